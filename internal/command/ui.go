// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"

	"github.com/apex/log"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/lructl/internal/meta"
	"github.com/staranto/lructl/internal/tui"
)

var ErrNotTerminal = errors.New("ui requires an interactive terminal")

// UiCommandAction starts the interactive cache manager.
func UiCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "ui") {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	sess, err := NewSession(cmd)
	if err != nil {
		return err
	}

	model := tui.New(sess, tui.Options{Color: cmd.Bool("color")})
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !cmd.Bool("inline") {
		opts = append(opts, tea.WithAltScreen())
	}

	_, err = tea.NewProgram(model, opts...).Run()
	return err
}

// UiCommandBuilder constructs the cli.Command for "ui".
func UiCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return (&CacheCommandBuilder{
		Name:      "ui",
		Usage:     "interactive cache manager",
		UsageText: `lructl ui [options]`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "inline",
				Usage: "draw below the prompt instead of taking over the screen",
				Value: false,
			},
		},
		Action: UiCommandAction,
		Meta:   meta,
	}).Build()
}
