// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aliyun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONResponseSuccess(t *testing.T) {
	body := []byte(`{"RequestId":"r-1","Regions":{"Region":[{"RegionId":"cn-hangzhou"}]}}`)

	got, err := ParseResponse(body, FormatJSON, 200)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestParseJSONResponseErrorEnvelope(t *testing.T) {
	body := []byte(`{
		"Code": "InvalidInstanceId.NotFound",
		"Message": "The specified InstanceId does not exist",
		"RequestId": "r-2",
		"HostId": "ecs.aliyuncs.com"
	}`)

	_, err := ParseResponse(body, FormatJSON, 404)
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "InvalidInstanceId.NotFound", pe.Code)
	assert.Equal(t, "The specified InstanceId does not exist", pe.Message)
	assert.Equal(t, "r-2", pe.RequestID)
	assert.Equal(t, "ecs.aliyuncs.com", pe.HostID)
	assert.Equal(t, 404, pe.Status)

	assert.True(t, IsProviderCode(err, "InvalidInstanceId.NotFound"))
	assert.False(t, IsProviderCode(err, "Throttling"))
}

func TestParseJSONResponseCodeAloneIsNotAnError(t *testing.T) {
	// Some success documents legitimately carry a Code field. Only the
	// Code+Message pair marks a rejection.
	body := []byte(`{"RequestId":"r-3","Code":"Success"}`)

	got, err := ParseResponse(body, FormatJSON, 200)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestParseJSONResponseMalformed(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"truncated", []byte(`{"RequestId":"r-1","Regions":{`)},
		{"not json", []byte(`<html>gateway error</html>`)},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.body, FormatJSON, 502)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestParseXMLResponseErrorEnvelope(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
		<Error>
			<Code>Throttling</Code>
			<Message>Request was denied due to request throttling.</Message>
			<RequestId>r-4</RequestId>
			<HostId>slb.aliyuncs.com</HostId>
		</Error>`)

	_, err := ParseResponse(body, FormatXML, 400)
	require.Error(t, err)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Throttling", pe.Code)
	assert.Equal(t, "r-4", pe.RequestID)
	assert.Equal(t, 400, pe.Status)
}

func TestParseXMLResponseSuccess(t *testing.T) {
	body := []byte(`<?xml version="1.0"?>
		<DescribeRegionsResponse>
			<RequestId>r-5</RequestId>
		</DescribeRegionsResponse>`)

	got, err := ParseResponse(body, FormatXML, 200)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestParseXMLResponseMalformed(t *testing.T) {
	_, err := ParseResponse([]byte(`<Error><Code>Throttling</Code>`), FormatXML, 500)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDecode(t *testing.T) {
	var out struct {
		RequestID string `json:"RequestId"`
	}
	require.NoError(t, Decode([]byte(`{"RequestId":"r-6"}`), &out))
	assert.Equal(t, "r-6", out.RequestID)

	// A nil target is a deliberate "don't care" and must not fail.
	assert.NoError(t, Decode([]byte(`{"RequestId":"r-6"}`), nil))

	err := Decode([]byte(`{"RequestId":`), &out)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}
