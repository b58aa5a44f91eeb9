// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aliyun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCreds = Credentials{
		AccessKeyID:     "some_access_key_id",
		SecretAccessKey: "some_secret_access_key",
	}
	testClock = time.Date(2015, 3, 4, 17, 0, 0, 0, time.UTC)
)

func TestBuildSignedQueryEnvelope(t *testing.T) {
	signed, err := BuildSignedQuery("cn-hangzhou", testCreds, "2014-05-26",
		"DescribeRegions", Params{"Action": "DescribeRegions"}, testClock, "nonce-1")
	require.NoError(t, err)

	assert.Equal(t, "DescribeRegions", signed["Action"])
	assert.Equal(t, "cn-hangzhou", signed["RegionId"])
	assert.Equal(t, "2014-05-26", signed["Version"])
	assert.Equal(t, "JSON", signed["Format"])
	assert.Equal(t, "some_access_key_id", signed["AccessKeyId"])
	assert.Equal(t, "HMAC-SHA1", signed["SignatureMethod"])
	assert.Equal(t, "1.0", signed["SignatureVersion"])
	assert.Equal(t, "nonce-1", signed["SignatureNonce"])
	assert.Equal(t, "2015-03-04T17:00:00Z", signed["TimeStamp"])
	assert.NotEmpty(t, signed["Signature"])
}

func TestBuildSignedQueryCallerOverridesEnvelope(t *testing.T) {
	signed, err := BuildSignedQuery("cn-hangzhou", testCreds, "2014-05-26",
		"DescribeRegions", Params{"Action": "DescribeRegions", "Format": "XML"},
		testClock, "nonce-1")
	require.NoError(t, err)

	assert.Equal(t, "XML", signed["Format"])
}

func TestBuildSignedQueryDomainNameOmitsRegion(t *testing.T) {
	signed, err := BuildSignedQuery("cn-hangzhou", testCreds, "2015-01-09",
		"DescribeDomainRecords",
		Params{"Action": "DescribeDomainRecords", "DomainName": "example.com"},
		testClock, "nonce-1")
	require.NoError(t, err)

	_, ok := signed["RegionId"]
	assert.False(t, ok)
	assert.Equal(t, "example.com", signed["DomainName"])
}

func TestBuildSignedQueryIsDeterministic(t *testing.T) {
	first, err := BuildSignedQuery("cn-hangzhou", testCreds, "2014-05-26",
		"DescribeRegions", Params{"Action": "DescribeRegions"}, testClock, "nonce-1")
	require.NoError(t, err)
	second, err := BuildSignedQuery("cn-hangzhou", testCreds, "2014-05-26",
		"DescribeRegions", Params{"Action": "DescribeRegions"}, testClock, "nonce-1")
	require.NoError(t, err)

	assert.Equal(t, first["Signature"], second["Signature"])

	// A different nonce must change the signature even with everything else
	// pinned.
	third, err := BuildSignedQuery("cn-hangzhou", testCreds, "2014-05-26",
		"DescribeRegions", Params{"Action": "DescribeRegions"}, testClock, "nonce-2")
	require.NoError(t, err)
	assert.NotEqual(t, first["Signature"], third["Signature"])
}

func TestBuildSignedQueryDoesNotMutateCallerParams(t *testing.T) {
	params := Params{"Action": "DescribeRegions"}
	_, err := BuildSignedQuery("cn-hangzhou", testCreds, "2014-05-26",
		"DescribeRegions", params, testClock, "nonce-1")
	require.NoError(t, err)

	assert.Equal(t, Params{"Action": "DescribeRegions"}, params)
}

func TestBuildSignedQueryValidation(t *testing.T) {
	tests := []struct {
		name    string
		region  string
		creds   Credentials
		version string
		action  string
	}{
		{"missing region", "", testCreds, "2014-05-26", "DescribeRegions"},
		{"missing credentials", "cn-hangzhou", Credentials{}, "2014-05-26", "DescribeRegions"},
		{"missing secret", "cn-hangzhou", Credentials{AccessKeyID: "id"}, "2014-05-26", "DescribeRegions"},
		{"missing version", "cn-hangzhou", testCreds, "", "DescribeRegions"},
		{"missing action", "cn-hangzhou", testCreds, "2014-05-26", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSignedQuery(tt.region, tt.creds, tt.version, tt.action,
				Params{}, testClock, "nonce-1")
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestParamsClone(t *testing.T) {
	original := Params{"a": "1"}
	copied := original.clone()
	copied["a"] = "2"
	copied["b"] = "3"

	assert.Equal(t, Params{"a": "1"}, original)
}
