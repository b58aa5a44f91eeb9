// Copyright (c) 2026 Quixey Inc.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the schema",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "cell padding for text output",
			Value: 1,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewRegionFlag constructs a cli.StringFlag for the "region" flag, optionally
// namespaced to a command and config file. params[1] is the config file. The
// ALI_REGION environment variable is consulted before the config file, which
// matches the resolution order the API credential chain uses.
func NewRegionFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "region id to use for all commands",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ALI_REGION"),
		),
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewAccessKeyFlag constructs a cli.StringFlag for the "access-key" flag. The
// value never comes from the config file; keys live in the environment or the
// dedicated credential files only.
func NewAccessKeyFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "access-key",
		Aliases: []string{"k"},
		Usage:   "access key id. Overrides the credential chain",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ALI_ACCESS_KEY_ID"),
		),
	}
}

// NewSecretKeyFlag constructs a cli.StringFlag for the "secret-key" flag.
// Same sourcing rules as NewAccessKeyFlag.
func NewSecretKeyFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "secret-key",
		Usage: "secret access key. Overrides the credential chain",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ALI_SECRET_ACCESS_KEY"),
		),
	}
}

// NewConnectionFlags bundles the flags every API-touching command carries:
// region plus the explicit key pair overrides.
func NewConnectionFlags(params ...string) []cli.Flag {
	return []cli.Flag{
		NewRegionFlag(params...),
		NewAccessKeyFlag(),
		NewSecretKeyFlag(),
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas checks if the given executable exists on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
