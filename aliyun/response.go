// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package aliyun

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// Format selects the response body encoding requested from the provider.
type Format string

const (
	FormatJSON Format = "JSON"
	FormatXML  Format = "XML"
)

// xmlErrorEnvelope is the provider's XML failure wrapper.
type xmlErrorEnvelope struct {
	XMLName   xml.Name `xml:"Error"`
	Code      string   `xml:"Code"`
	Message   string   `xml:"Message"`
	RequestID string   `xml:"RequestId"`
	HostID    string   `xml:"HostId"`
}

// ParseResponse validates a raw response body and surfaces provider
// rejections as typed errors. A body that cannot be decoded in the expected
// format yields ErrMalformedResponse; an error envelope (Code plus Message)
// yields a *ProviderError carrying the provider code, message and request id.
// On success the body is returned unchanged so callers can decode it into an
// action-specific shape.
func ParseResponse(body []byte, format Format, status int) ([]byte, error) {
	switch format {
	case FormatXML:
		return parseXMLResponse(body, status)
	default:
		return parseJSONResponse(body, status)
	}
}

func parseJSONResponse(body []byte, status int) ([]byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON body: %w", ErrMalformedResponse)
	}

	doc := gjson.ParseBytes(body)
	code := doc.Get("Code")
	message := doc.Get("Message")
	if code.Exists() && message.Exists() {
		return nil, &ProviderError{
			Code:      code.String(),
			Message:   message.String(),
			RequestID: doc.Get("RequestId").String(),
			HostID:    doc.Get("HostId").String(),
			Status:    status,
		}
	}
	return body, nil
}

func parseXMLResponse(body []byte, status int) ([]byte, error) {
	var envelope xmlErrorEnvelope
	err := xml.Unmarshal(body, &envelope)
	switch {
	case err == nil:
		return nil, &ProviderError{
			Code:      envelope.Code,
			Message:   envelope.Message,
			RequestID: envelope.RequestID,
			HostID:    envelope.HostID,
			Status:    status,
		}
	case errorsIsUnmarshalMismatch(err):
		// Well-formed XML with a non-Error document element: a success body.
		if wellFormedXML(body) {
			return body, nil
		}
	}
	return nil, fmt.Errorf("invalid XML body: %w", ErrMalformedResponse)
}

// errorsIsUnmarshalMismatch reports whether err is xml.Unmarshal complaining
// about the document element name rather than malformed markup.
func errorsIsUnmarshalMismatch(err error) bool {
	_, ok := err.(xml.UnmarshalError)
	return ok
}

// wellFormedXML walks the token stream to confirm the body parses.
func wellFormedXML(body []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return true
		}
		if err != nil {
			return false
		}
	}
}

// Decode unmarshals a validated JSON success body into out. Service packages
// use it to decode individual pages delivered by GetPaginated.
func Decode(body []byte, out any) error {
	return decodeInto(body, out)
}

// decodeInto unmarshals a validated JSON success body into out.
func decodeInto(body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %v: %w", err, ErrMalformedResponse)
	}
	return nil
}
