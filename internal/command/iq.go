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

// iqDefaultAttrs specifies the default attributes displayed for instances in
// the "iq" command output.
var iqDefaultAttrs = []string{"InstanceId", "Status"}

// iqDetailAttrs is the richer default set used when --id asks for a single
// instance document.
var iqDetailAttrs = []string{
	"InstanceId", "InstanceName", "InstanceType", "ZoneId", "Status",
	"ImageId", "CreationTime",
}

// iqCommandAction is the action handler for the "iq" subcommand. Without
// --id it pages through the instance status list; with --id it fetches the
// full attribute document for one instance. Server-side filters (the
// underscore-prefixed --filter entries) become request parameters on the
// list query.
func iqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "iq") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(ecs.Instance{})) {
		return nil
	}

	conn, err := NewConnection(cmd, aliyun.ServiceECS)
	if err != nil {
		return err
	}

	if id := cmd.String("id"); id != "" {
		instance, err := ecs.NewFromConnection(conn).DescribeInstance(ctx, id)
		if err != nil {
			return err
		}
		return EmitJSONSlice([]ecs.Instance{*instance}, BuildAttrs(cmd, iqDetailAttrs...), cmd)
	}

	params := aliyun.Params{"Action": "DescribeInstanceStatus"}
	if zone := cmd.String("zone"); zone != "" {
		params["ZoneId"] = zone
	}
	ServerSideFilterParams(cmd, params)

	var statuses []ecs.InstanceStatus
	err = conn.GetPaginated(ctx, params, func(body []byte) error {
		var page struct {
			InstanceStatuses struct {
				InstanceStatus []ecs.InstanceStatus `json:"InstanceStatus"`
			} `json:"InstanceStatuses"`
		}
		if err := aliyun.Decode(body, &page); err != nil {
			return err
		}
		statuses = append(statuses, page.InstanceStatuses.InstanceStatus...)
		return nil
	})
	if err != nil {
		return err
	}

	return EmitJSONSlice(statuses, BuildAttrs(cmd, iqDefaultAttrs...), cmd)
}

// iqCommandBuilder constructs the cli.Command for "iq", wiring metadata,
// flags, and action handlers.
func iqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "iq",
		Usage:     "instance query",
		UsageText: "alictl iq [options]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "fetch the full document for one instance id",
			},
			&cli.StringFlag{
				Name:    "zone",
				Aliases: []string{"z"},
				Usage:   "limit results to one availability zone",
			},
		}, NewConnectionFlags("iq", meta.Config.Source)...),
		Action: iqCommandAction,
		Meta:   meta,
	}).Build()
}
