// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/internal/attrs"
	"github.com/alictl/alictl/internal/filters"
	"github.com/alictl/alictl/internal/meta"
	"github.com/alictl/alictl/internal/output"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpSchemaIfRequested writes the attribute schema for the provided type to
// stdout when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t, nil)
		return true
	}
	return false
}

// EmitJSONSlice marshals a result slice as JSON and passes it to the common
// output routine. Typed query results funnel through here so that --attrs,
// --filter, --sort and --output all behave identically across commands.
func EmitJSONSlice(results any, al attrs.AttrList, cmd *cli.Command) error {
	var raw bytes.Buffer
	if err := json.NewEncoder(&raw).Encode(results); err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	output.SliceDiceSpit(raw, al, cmd, "", os.Stdout, nil)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewConnection builds a signed connection to the given service using the
// command's region and credential flags. When both key flags are present they
// pin the key pair; otherwise the default resolution chain runs (environment,
// user credential file, system credential file).
func NewConnection(cmd *cli.Command, service aliyun.Service) (*aliyun.Connection, error) {
	region := cmd.String("region")
	if region == "" {
		return nil, fmt.Errorf("region is required: set --region, ALI_REGION or the config file")
	}

	var opts []aliyun.Option
	if ak, sk := cmd.String("access-key"), cmd.String("secret-key"); ak != "" && sk != "" {
		opts = append(opts, aliyun.WithCredentials(aliyun.Credentials{
			AccessKeyID:     ak,
			SecretAccessKey: sk,
		}))
	}

	return aliyun.New(region, service, opts...)
}

// ServerSideFilterParams extracts the request parameters encoded in the
// --filter flag. Filters prefixed with an underscore travel to the provider
// as query parameters instead of being applied to the result set locally.
func ServerSideFilterParams(cmd *cli.Command, params aliyun.Params) {
	for k, v := range filters.ServerSideParams(cmd.String("filter")) {
		params[k] = v
	}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr alictl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "alictl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
