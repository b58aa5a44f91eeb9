// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/aliyun/slb"
	"github.com/alictl/alictl/internal/meta"
)

// lqDefaultAttrs specifies the default attributes displayed for load
// balancers in the "lq" command output.
var lqDefaultAttrs = []string{"LoadBalancerId", "LoadBalancerName", "LoadBalancerStatus"}

// lqDetailAttrs is the richer default set used when --id asks for a single
// load balancer document.
var lqDetailAttrs = []string{
	"LoadBalancerId", "LoadBalancerName", "LoadBalancerStatus", "Address",
	"AddressType", "RegionId",
}

// lqCommandAction is the action handler for the "lq" subcommand. Without
// --id it lists the load balancers of the region, optionally restricted to
// those fronting --server-id; with --id it fetches the full attribute
// document, ports and backend pool included.
func lqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "lq") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(slb.LoadBalancer{})) {
		return nil
	}

	conn, err := NewConnection(cmd, aliyun.ServiceSLB)
	if err != nil {
		return err
	}
	client := slb.NewFromConnection(conn)

	if id := cmd.String("id"); id != "" {
		lb, err := client.DescribeLoadBalancer(ctx, id)
		if err != nil {
			return err
		}
		return EmitJSONSlice([]slb.LoadBalancer{*lb}, BuildAttrs(cmd, lqDetailAttrs...), cmd)
	}

	lbs, err := client.DescribeLoadBalancers(ctx, cmd.String("server-id"))
	if err != nil {
		return err
	}

	return EmitJSONSlice(lbs, BuildAttrs(cmd, lqDefaultAttrs...), cmd)
}

// lqCommandBuilder constructs the cli.Command for "lq", wiring metadata,
// flags, and action handlers.
func lqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "lq",
		Usage:     "load balancer query",
		UsageText: "alictl lq [options]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "fetch the full document for one load balancer id",
			},
			&cli.StringFlag{
				Name:  "server-id",
				Usage: "limit results to balancers fronting this instance id",
			},
		}, NewConnectionFlags("lq", meta.Config.Source)...),
		Action: lqCommandAction,
		Meta:   meta,
	}).Build()
}
