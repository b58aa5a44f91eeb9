// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aliyun

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"space star plus tilde", "*+ ~", "%2A%2B%20~"},
		{"multibyte", "ä", "%C3%A4"},
		{"already encoded is re-encoded", "~%7E", "~%257E"},
		{"digits pass through", "42", "42"},
		{"unreserved pass through", "abc-DEF_123.x", "abc-DEF_123.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := percentEncode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPercentEncodeRejectsInvalidUTF8(t *testing.T) {
	_, err := percentEncode(string([]byte{0xff, 0xfe}))
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestCanonicalizeSortsByteOrder(t *testing.T) {
	canonical, err := canonicalize(map[string]string{
		"Zebra":  "1",
		"Action": "DescribeRegions",
		"aaa":    "2",
	})
	require.NoError(t, err)

	// Upper case sorts before lower case in byte order.
	assert.Equal(t, "Action=DescribeRegions&Zebra=1&aaa=2", canonical)
}

func TestStringToSign(t *testing.T) {
	got := stringToSign("GET", "a=b&c=d")
	assert.Equal(t, "GET&%2F&a%3Db%26c%3Dd", got)
}

// TestComputeSignature pins the signature for a fixed parameter set. The
// expected value is the provider-verified result for this exact input; any
// change to the encoding or canonicalization rules breaks it.
func TestComputeSignature(t *testing.T) {
	sig, err := computeSignature("some_secret_access_key", map[string]string{
		"abc":  "def",
		"ä":    "str type",
		"*+ ~": "*+ ~",
	})
	require.NoError(t, err)
	assert.Equal(t, "Esu7vZK6JBsujsaQXT1AHKR5Ols=", sig)
}

func TestComputeSignatureIsDeterministic(t *testing.T) {
	params := map[string]string{"Action": "DescribeRegions", "RegionId": "cn-hangzhou"}

	first, err := computeSignature("secret", params)
	require.NoError(t, err)
	second, err := computeSignature("secret", params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSignatureChangesWithInput(t *testing.T) {
	base := map[string]string{"Action": "DescribeRegions", "RegionId": "cn-hangzhou"}
	baseSig, err := computeSignature("secret", base)
	require.NoError(t, err)

	changedParam := map[string]string{"Action": "DescribeRegions", "RegionId": "cn-beijing"}
	changedSig, err := computeSignature("secret", changedParam)
	require.NoError(t, err)
	assert.NotEqual(t, baseSig, changedSig)

	otherSecretSig, err := computeSignature("other", base)
	require.NoError(t, err)
	assert.NotEqual(t, baseSig, otherSecretSig)
}

func TestComputeSignatureRejectsInvalidUTF8(t *testing.T) {
	_, err := computeSignature("secret", map[string]string{
		"Action": string([]byte{0xff}),
	})
	assert.ErrorIs(t, err, ErrEncoding)
}
