// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/lructl/internal/meta"
	"github.com/staranto/lructl/internal/output"
	"github.com/staranto/lructl/internal/script"
)

// ReplayCommandAction is the action handler for the "replay" subcommand. It
// reads a script from the named file (or stdin when the name is absent or
// "-"), applies every op to a fresh cache and prints the final contents.
func ReplayCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "replay") {
		return nil
	}

	in := cmd.Root().Reader
	if name := cmd.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	ops, err := script.Parse(in)
	if err != nil {
		return err
	}
	log.Debugf("parsed %d ops", len(ops))

	r, err := NewRunner(cmd)
	if err != nil {
		return err
	}
	r.Quiet = cmd.Bool("quiet")
	r.Trace = cmd.Bool("trace")

	if err := r.Run(ctx, ops); err != nil {
		return err
	}

	w := r.Out
	if err := output.Render(w, r.Visible(), r.Render); err != nil {
		return err
	}

	if cmd.Bool("summary") && !r.Quiet {
		_, err = fmt.Fprintln(w, r.Summary())
	}
	return err
}

// ReplayCommandBuilder constructs the cli.Command for "replay".
func ReplayCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CacheCommandBuilder{
		Name:      "replay",
		Usage:     "apply a script of get/put operations",
		UsageText: `lructl replay [FILE|-] [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only print dumps, traces and the final contents",
				Value:   false,
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "print hit, miss and eviction totals at the end",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("replay.summary", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print how the contents changed after each op",
				Sources: cli.NewValueSourceChain(
					yaml.YAML("replay.trace", altsrc.StringSourcer(meta.Config.Source)),
				),
				Value: false,
			},
		},
		Action: ReplayCommandAction,
		Meta:   meta,
	}).Build()
}
