// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/urfave/cli/v3"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/internal/meta"
)

// callCommandAction is the action handler for the "call" subcommand. It
// signs and sends one raw API request: the first positional argument names
// the service, the rest are Key=Value request parameters passed through
// verbatim. The response body is printed as sorted, indented JSON, or as the
// sub-document selected by --query.
func callCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "call") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("service is required: alictl call <ecs|slb|dns> Action=... [Key=Value...]")
	}

	if err := ServiceValidator(args[0]); err != nil {
		return fmt.Errorf("service %q: %v", args[0], err)
	}
	service, err := aliyun.ServiceByName(args[0])
	if err != nil {
		return err
	}

	params := aliyun.Params{}
	for _, arg := range args[1:] {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return fmt.Errorf("malformed parameter %q: want Key=Value", arg)
		}
		params[key] = value
	}
	if params["Action"] == "" {
		return fmt.Errorf("an Action=... parameter is required")
	}

	conn, err := NewConnection(cmd, service)
	if err != nil {
		return err
	}

	body, err := conn.Do(ctx, params)
	if err != nil {
		return err
	}

	if q := cmd.String("query"); q != "" {
		result := gjson.GetBytes(body, q)
		if !result.Exists() {
			return fmt.Errorf("no such path in response: %s", q)
		}
		fmt.Fprintln(os.Stdout, result.String())
		return nil
	}

	out := pretty.PrettyOptions(body, &pretty.Options{Indent: "  ", SortKeys: true})
	if cmd.Bool("color") {
		out = pretty.Color(out, nil)
	}
	_, _ = os.Stdout.Write(out)
	return nil
}

// callCommandBuilder constructs the cli.Command for "call", wiring metadata,
// flags, and action handlers.
func callCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "sign and send one raw API request",
		UsageText: "alictl call [options] <ecs|slb|dns> Action=DescribeRegions [Key=Value...]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored text output",
				Value:   false,
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "dotted path of the response sub-document to print",
			},
		}, NewConnectionFlags("call", meta.Config.Source)...),
		Action: callCommandAction,
	}
}
