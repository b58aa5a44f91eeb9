// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/alictl/alictl/aliyun"
	"github.com/alictl/alictl/aliyun/dns"
	"github.com/alictl/alictl/internal/meta"
)

// nqDefaultAttrs specifies the default attributes displayed for domain
// records in the "nq" command output.
var nqDefaultAttrs = []string{"RecordId", "RR", "Type", "Value"}

// nqCommandAction is the action handler for the "nq" subcommand. It lists
// the resource records of the domain named by --domain.
func nqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "nq") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(dns.Record{})) {
		return nil
	}

	domain := cmd.String("domain")
	if domain == "" {
		return fmt.Errorf("domain is required: set --domain")
	}

	conn, err := NewConnection(cmd, aliyun.ServiceDNS)
	if err != nil {
		return err
	}

	records, err := dns.NewFromConnection(conn).DescribeRecords(ctx, domain)
	if err != nil {
		return err
	}

	return EmitJSONSlice(records, BuildAttrs(cmd, nqDefaultAttrs...), cmd)
}

// nqCommandBuilder constructs the cli.Command for "nq", wiring metadata,
// flags, and action handlers.
func nqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "nq",
		Usage:     "domain record query",
		UsageText: "alictl nq --domain example.com [options]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "domain",
				Aliases: []string{"d"},
				Usage:   "domain name whose records to list",
			},
		}, NewConnectionFlags("nq", meta.Config.Source)...),
		Action: nqCommandAction,
		Meta:   meta,
	}).Build()
}
