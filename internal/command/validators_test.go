// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("xml"))
	assert.Error(t, OutputValidator(""))
}

func TestServiceValidator(t *testing.T) {
	for _, v := range []string{"ecs", "slb", "dns"} {
		assert.NoError(t, ServiceValidator(v))
	}
	assert.Error(t, ServiceValidator("rds"))
	assert.Error(t, ServiceValidator("ECS"))
	assert.Error(t, ServiceValidator(""))
}

func TestFlagValidators(t *testing.T) {
	assert.NoError(t, FlagValidators("json", OutputValidator))
	assert.Error(t, FlagValidators("ecs", OutputValidator, ServiceValidator))
	assert.NoError(t, FlagValidators("anything"))
}
