// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package aliyun

import (
	"fmt"
	"net/url"
	"time"
)

// Params is the open string-to-string parameter mapping accepted at the API
// boundary. Keys are validated only by the provider, never locally.
type Params map[string]string

// clone returns a shallow copy so builders never mutate caller maps.
func (p Params) clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// BuildSignedQuery merges action parameters with the common envelope fields,
// computes the request signature, and returns the complete ready-to-send
// parameter set. It is a pure function of its inputs: the clock value and
// nonce are passed in so tests can pin them and reproduce byte-identical
// requests.
//
// Caller params overwrite envelope defaults, mirroring the provider's
// semantics for fields like Format. A request carrying a DomainName parameter
// (DNS API) omits RegionId from the envelope.
func BuildSignedQuery(region string, creds Credentials, version, action string,
	params Params, now time.Time, nonce string) (Params, error) {

	switch {
	case region == "":
		return nil, fmt.Errorf("region is required: %w", ErrInvalidArgument)
	case creds.AccessKeyID == "" || creds.SecretAccessKey == "":
		return nil, fmt.Errorf("credentials are required: %w", ErrInvalidArgument)
	case action == "":
		return nil, fmt.Errorf("action is required: %w", ErrInvalidArgument)
	case version == "":
		return nil, fmt.Errorf("api version is required: %w", ErrInvalidArgument)
	}

	merged := Params{
		"Format":           string(FormatJSON),
		"Version":          version,
		"AccessKeyId":      creds.AccessKeyID,
		"SignatureVersion": signatureVersion,
		"SignatureMethod":  signatureMethod,
		"SignatureNonce":   nonce,
		"TimeStamp":        now.UTC().Format(timestampFormat),
		"RegionId":         region,
		"Action":           action,
	}
	for k, v := range params {
		merged[k] = v
	}

	// The DNS API rejects RegionId; requests are scoped by domain instead.
	if _, ok := merged["DomainName"]; ok {
		delete(merged, "RegionId")
	}

	signature, err := computeSignature(creds.SecretAccessKey, merged)
	if err != nil {
		return nil, err
	}
	merged["Signature"] = signature

	return merged, nil
}

// encodeQuery renders a signed parameter set as a URL query string.
func encodeQuery(params Params) string {
	values := make(url.Values, len(params))
	for k, v := range params {
		values.Set(k, v)
	}
	return values.Encode()
}
