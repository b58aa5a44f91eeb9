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

// rqDefaultAttrs specifies the default attributes displayed for regions in
// the "rq" command output.
var rqDefaultAttrs = []string{"RegionId"}

// rqCommandAction is the action handler for the "rq" subcommand. It lists
// the regions offering ECS, supports --tldr/--schema shortcuts, and emits
// results per common flags.
func rqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "rq") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(ecs.Region{})) {
		return nil
	}

	conn, err := NewConnection(cmd, aliyun.ServiceECS)
	if err != nil {
		return err
	}

	regions, err := ecs.NewFromConnection(conn).DescribeRegions(ctx)
	if err != nil {
		return err
	}

	return EmitJSONSlice(regions, BuildAttrs(cmd, rqDefaultAttrs...), cmd)
}

// rqCommandBuilder constructs the cli.Command for "rq", wiring metadata,
// flags, and action handlers.
func rqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "rq",
		Usage:     "region query",
		UsageText: "alictl rq [options]",
		Flags:     NewConnectionFlags("rq", meta.Config.Source),
		Action:    rqCommandAction,
		Meta:      meta,
	}).Build()
}
