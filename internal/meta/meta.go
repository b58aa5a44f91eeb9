// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/alictl/alictl/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI
// arguments, loaded configuration and the process context.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}
