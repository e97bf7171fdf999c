// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"gopkg.in/yaml.v2"

	"github.com/staranto/lructl/internal/config"
)

// Formats lists the values accepted for Options.Format.
var Formats = []string{"text", "json", "yaml", "raw"}

var ErrUnknownFormat = errors.New("unknown output format")

// Entry is one resident key/value pair.
type Entry struct {
	Key   int `json:"key" yaml:"key"`
	Value int `json:"value" yaml:"value"`
}

// Document is the cache contents at one instant, least recently used first.
type Document struct {
	Capacity int     `json:"capacity" yaml:"capacity"`
	Size     int     `json:"size" yaml:"size"`
	Entries  []Entry `json:"entries" yaml:"entries"`
}

// Collect drains seq into a Document.
func Collect(capacity int, seq iter.Seq2[int, int]) Document {
	doc := Document{Capacity: capacity, Entries: []Entry{}}
	for k, v := range seq {
		doc.Entries = append(doc.Entries, Entry{Key: k, Value: v})
	}
	doc.Size = len(doc.Entries)
	return doc
}

type Options struct {
	Format string
	Titles bool
	Color  bool
}

// Render writes doc to w in the requested format. An empty format means text.
func Render(w io.Writer, doc Document, opts Options) error {
	log.Debugf("render format=%s size=%d", opts.Format, doc.Size)

	switch opts.Format {
	case "json":
		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "raw":
		for _, e := range doc.Entries {
			if _, err := fmt.Fprintf(w, "Key: %d, Value: %d\n", e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	case "", "text":
		return TableWriter(w, doc, opts)
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
}

// TableWriter renders the entries as a borderless table, one row per entry in
// recency order, honoring the color and titles options.
func TableWriter(w io.Writer, doc Document, opts Options) error {
	if len(doc.Entries) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	rows := make([][]string, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.Itoa(e.Key),
			strconv.Itoa(e.Value),
		})
	}

	pad, _ := config.GetInt("padding", 1)

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Rows(rows...)

	if opts.Titles {
		t = t.Headers("#", "key", "value").BorderHeader(false)
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
