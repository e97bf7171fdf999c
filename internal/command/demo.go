// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/lructl/internal/meta"
	"github.com/staranto/lructl/internal/output"
	"github.com/staranto/lructl/internal/script"
)

type demoStep struct {
	Title  string
	Script string
	// Fresh starts the step with an empty cache.
	Fresh bool
}

var demoSteps = []demoStep{
	{Title: "Fill the cache", Script: "put 1 10\nput 2 20\nput 3 30"},
	{Title: "Read key 1, making it the most recently used", Script: "get 1"},
	{Title: "Insert past capacity, evicting the least recently used key", Script: "put 4 40"},
	{Title: "Read the evicted key", Script: "get 2"},
	{Title: "Re-put a key on a fresh cache: updated in place, no duplicate", Script: "put 5 50\nput 5 99\nget 5", Fresh: true},
}

// DemoCommandAction walks through the canonical LRU scenarios, printing every
// op, its result and the contents after each step.
func DemoCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "demo") {
		return nil
	}

	w := cmd.Root().Writer
	var r *Runner

	for i, step := range demoSteps {
		if r == nil || step.Fresh {
			var err error
			if r, err = NewRunner(cmd); err != nil {
				return err
			}
			r.Echo = true
		}

		ops, err := script.Parse(strings.NewReader(step.Script))
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %d. %s (capacity %d)\n", i+1, step.Title, r.Session.Cache().Cap())

		if err := r.Run(ctx, ops); err != nil {
			return err
		}
		if err := output.Render(w, r.Visible(), r.Render); err != nil {
			return err
		}
	}

	return nil
}

// DemoCommandBuilder constructs the cli.Command for "demo".
func DemoCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CacheCommandBuilder{
		Name:      "demo",
		Usage:     "walk through the LRU eviction scenarios",
		UsageText: `lructl demo [options]`,
		Action:    DemoCommandAction,
		Meta:      meta,
	}).Build()
}
