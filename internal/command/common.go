// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/staranto/lructl/internal/filters"
	"github.com/staranto/lructl/internal/lru"
	"github.com/staranto/lructl/internal/meta"
	"github.com/staranto/lructl/internal/output"
	"github.com/staranto/lructl/internal/session"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr lructl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "lructl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewSession builds a fresh cache sized by --capacity and hands it to a new
// session. Each command invocation owns its own cache.
func NewSession(cmd *cli.Command) (*session.Session, error) {
	c, err := lru.NewSynced[int, int](cmd.Int("capacity"))
	if err != nil {
		return nil, err
	}
	return session.New(c), nil
}

// NewRunner wires a fresh session and the output flags into a Runner writing
// to the root command's writer.
func NewRunner(cmd *cli.Command) (*Runner, error) {
	sess, err := NewSession(cmd)
	if err != nil {
		return nil, err
	}

	set, err := filters.BuildFilters(cmd.String("filter"))
	if err != nil {
		return nil, err
	}

	return &Runner{
		Session: sess,
		Out:     cmd.Root().Writer,
		Render:  RenderOptions(cmd),
		Filter:  set,
	}, nil
}

// RenderOptions maps the output flags onto output.Options.
func RenderOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Titles: cmd.Bool("titles"),
		Color:  cmd.Bool("color"),
	}
}

// CacheCommandBuilder constructs a cli.Command for the cache subcommands using
// a consistent pattern: metadata, tldr flag, global flags and the global
// validator are wired automatically.
type CacheCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (b *CacheCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      b.Name,
		Usage:     b.Usage,
		UsageText: b.UsageText,
		Metadata: map[string]any{
			"meta": b.Meta,
		},
		Flags: append(b.Flags, append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags(b.Name, b.Meta.Config.Source)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: b.Action,
	}
}
