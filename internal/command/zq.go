// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/aliyun/ecs"
	"github.com/alictl/alictl/internal/meta"
)

// zqDefaultAttrs specifies the default attributes displayed for zones in
// the "zq" command output.
var zqDefaultAttrs = []string{"ZoneId", "LocalName"}

// zqCommandAction is the action handler for the "zq" subcommand. It lists
// the availability zones of the selected region.
func zqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "zq") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(ecs.Zone{})) {
		return nil
	}

	conn, err := NewConnection(cmd, aliyun.ServiceECS)
	if err != nil {
		return err
	}

	zones, err := ecs.NewFromConnection(conn).DescribeZones(ctx)
	if err != nil {
		return err
	}

	return EmitJSONSlice(zones, BuildAttrs(cmd, zqDefaultAttrs...), cmd)
}

// zqCommandBuilder constructs the cli.Command for "zq", wiring metadata,
// flags, and action handlers.
func zqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "zq",
		Usage:     "zone query",
		UsageText: "alictl zq [options]",
		Flags:     NewConnectionFlags("zq", meta.Config.Source),
		Action:    zqCommandAction,
		Meta:      meta,
	}).Build()
}
