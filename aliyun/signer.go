// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package aliyun

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

// Signing envelope constants fixed by the provider's RPC-style API.
const (
	signatureMethod  = "HMAC-SHA1"
	signatureVersion = "1.0"
	timestampFormat  = "2006-01-02T15:04:05Z"
)

// percentEncode applies the provider's percent-encoding rules: RFC 3986
// unreserved characters (and '~') stay bare, space becomes %20 (never '+'),
// and '*' and '+' are encoded. Values that are not valid UTF-8 cannot be
// encoded faithfully and are rejected.
func percentEncode(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%q is not valid UTF-8: %w", s, ErrEncoding)
	}
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20"), nil
}

// canonicalize sorts parameter names in byte order and joins the encoded
// name=value pairs with '&'. The result is the canonical query string the
// signature is computed over, and must be byte-identical between signer and
// verifier.
func canonicalize(params map[string]string) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		ek, err := percentEncode(k)
		if err != nil {
			return "", err
		}
		ev, err := percentEncode(params[k])
		if err != nil {
			return "", err
		}
		pairs = append(pairs, ek+"="+ev)
	}
	return strings.Join(pairs, "&"), nil
}

// stringToSign prefixes the canonical query string with the HTTP verb and the
// encoded "/" separator per the provider's signing specification.
func stringToSign(method, canonical string) string {
	// The canonical string is itself percent-encoded once more; it is already
	// valid UTF-8 so this cannot fail.
	encoded, _ := percentEncode(canonical)
	return method + "&%2F&" + encoded
}

// computeSignature canonicalizes params and returns the base64-encoded
// HMAC-SHA1 over the string-to-sign, keyed by the secret with the fixed "&"
// suffix. Deterministic: identical params and secret always yield an
// identical signature.
func computeSignature(secretAccessKey string, params map[string]string) (string, error) {
	canonical, err := canonicalize(params)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha1.New, []byte(secretAccessKey+"&"))
	mac.Write([]byte(stringToSign("GET", canonical)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
