// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/staranto/lructl/internal/filters"
	"github.com/staranto/lructl/internal/output"
	"github.com/staranto/lructl/internal/script"
	"github.com/staranto/lructl/internal/session"
)

// Runner applies parsed script ops to a session and reports each outcome.
type Runner struct {
	Session *session.Session
	Out     io.Writer
	Render  output.Options
	// Filter narrows the entries that dumps print.
	Filter filters.Set
	// Echo prints each op before its result.
	Echo bool
	// Quiet suppresses per-op messages; dumps and traces still print.
	Quiet bool
	// Trace prints a snapshot diff after every op that touches the cache.
	Trace bool
}

// Run stops at the first write error or when ctx is done.
func (r *Runner) Run(ctx context.Context, ops []script.Op) error {
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.apply(op); err != nil {
			return fmt.Errorf("%s (position %d): %w", op, op.Pos, err)
		}
	}
	return nil
}

func (r *Runner) apply(op script.Op) error {
	log.Debugf("apply %s", op)

	if r.Echo {
		if _, err := fmt.Fprintf(r.Out, "> %s\n", op); err != nil {
			return err
		}
	}

	var before output.Document
	if r.Trace && op.Mutates() {
		before = r.Snapshot()
	}

	var res session.Result
	switch op.Kind {
	case script.Get:
		res = r.Session.Get(op.Key)
	case script.Put:
		res = r.Session.Put(op.Key, op.Value)
	case script.Dump:
		return output.Render(r.Out, r.Visible(), r.Render)
	default:
		return fmt.Errorf("unsupported operation %q", op.Kind)
	}

	if !r.Quiet {
		if _, err := fmt.Fprintln(r.Out, res.Message()); err != nil {
			return err
		}
	}

	if r.Trace {
		diff, err := output.Diff(before, r.Snapshot(), r.Render.Color)
		if err != nil {
			return err
		}
		if diff != "" {
			if _, err := fmt.Fprint(r.Out, diff); err != nil {
				return err
			}
		}
	}

	return nil
}

// Snapshot returns the current contents, least recently used first.
func (r *Runner) Snapshot() output.Document {
	c := r.Session.Cache()
	return output.Collect(c.Cap(), c.All())
}

// Visible is Snapshot narrowed by Filter.
func (r *Runner) Visible() output.Document {
	doc := r.Snapshot()
	if len(r.Filter) == 0 {
		return doc
	}

	kept := make([]output.Entry, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		if r.Filter.Match(e.Key, e.Value) {
			kept = append(kept, e)
		}
	}
	doc.Entries = kept
	return doc
}

// Summary is a one-line account of the session's activity.
func (r *Runner) Summary() string {
	st := r.Session.Stats()
	return fmt.Sprintf("%s gets (%s hits, %s misses), %s puts, %s evictions",
		humanize.Comma(st.Gets),
		humanize.Comma(st.Hits),
		humanize.Comma(st.Misses),
		humanize.Comma(st.Puts),
		humanize.Comma(st.Evictions),
	)
}
