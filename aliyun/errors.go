// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package aliyun

import (
	"errors"
	"fmt"
)

// Sentinel errors for local failures. These enable callers to detect
// specific conditions via errors.Is while keeping messages consistent.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrCredentialsNotFound = errors.New("could not find credentials")
	ErrEncoding            = errors.New("parameter cannot be encoded")
	ErrMalformedResponse   = errors.New("malformed response")
)

// ProviderError is an explicit rejection from the Aliyun API. It carries the
// provider's error code and message plus the request id for diagnosis.
type ProviderError struct {
	Code      string
	Message   string
	RequestID string
	HostID    string
	Status    int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("aliyun: %s: %s (request id %s)", e.Code, e.Message, e.RequestID)
}

// IsProviderCode reports whether err is a ProviderError with the given code.
func IsProviderCode(err error, code string) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == code
}
