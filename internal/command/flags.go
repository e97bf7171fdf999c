// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// DefaultCapacity matches the cache manager's out-of-the-box size.
const DefaultCapacity = 3

var tldrFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	Hidden:      !pathHas("tldr"),
	HideDefault: true,
}

// NewGlobalFlags returns the flags shared by every cache command. ns is the
// command name, used as the namespace for config file lookups, and source is
// the config file path (possibly empty).
func NewGlobalFlags(ns string, source string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "capacity",
			Aliases: []string{"n"},
			Usage:   "maximum number of entries the cache holds",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LRUCTL_CAPACITY"),
				yaml.YAML(ns+"."+"capacity", altsrc.StringSourcer(source)),
				yaml.YAML("capacity", altsrc.StringSourcer(source)),
			),
			Value: DefaultCapacity,
			Validator: func(value int) error {
				return FlagValidators(value, CapacityValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(source)),
				yaml.YAML("color", altsrc.StringSourcer(source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to the printed entries",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, FilterValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("LRUCTL_OUTPUT"),
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(source)),
				yaml.YAML("output", altsrc.StringSourcer(source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, OutputValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(source)),
				yaml.YAML("titles", altsrc.StringSourcer(source)),
			),
			Value: false,
		},
	}

	return
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
