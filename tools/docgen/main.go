// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

// docgen turns docs/commands/<cmd>.md into
//   - docs/man/share/man1/lructl-<cmd>.1 (the whole page via md2man)
//   - docs/tldr/lructl-<cmd>.md (summary plus the Quick examples block)

const program = "lructl"

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	n, err := generate(repoRoot, writeOnlyIfChanged)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("generated docs for %d command(s)\n", n)
}

func generate(repoRoot string, onlyIfChanged bool) (int, error) {
	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output dir: %w", err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return 0, fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			return processed, err
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("%s-%s.1", program, cmd))
		if err := writeFileIfChanged(manPath, md2man.Render(raw), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing man page for %s: %w", cmd, err)
		}

		p := parsePage(string(raw))
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("%s-%s.md", program, cmd))
		if err := writeFileIfChanged(tldrPath, []byte(buildTLDR(cmd, p)), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing TLDR for %s: %w", cmd, err)
		}

		processed++
	}

	if processed == 0 {
		return 0, fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return processed, nil
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// page is a command doc split on its "## " headings. Section names are
// lowercased.
type page struct {
	Title    string
	Sections map[string]string
}

func parsePage(md string) page {
	p := page{Sections: map[string]string{}}

	var name string
	var body strings.Builder
	flush := func() {
		if name != "" {
			p.Sections[name] = strings.TrimSpace(body.String())
		}
		body.Reset()
	}

	for _, ln := range strings.Split(md, "\n") {
		ln = strings.TrimRight(ln, "\r")
		switch {
		case strings.HasPrefix(ln, "## "):
			flush()
			name = strings.ToLower(strings.TrimSpace(ln[3:]))
		case strings.HasPrefix(ln, "# ") && p.Title == "":
			p.Title = strings.TrimSpace(ln[2:])
		default:
			body.WriteString(ln)
			body.WriteString("\n")
		}
	}
	flush()

	return p
}

// Summary is the first paragraph of the "Short description" section, falling
// back to the title.
func (p page) Summary() string {
	para, _, _ := strings.Cut(p.Sections["short description"], "\n\n")
	if s := strings.Join(strings.Fields(para), " "); s != "" {
		return s
	}
	if p.Title != "" {
		return p.Title + "."
	}
	return ""
}

type example struct {
	Desc string
	Cmd  string
}

// Examples reads the first fenced block of "Quick examples", where each
// command line is described by the "#" comment above it.
func (p page) Examples() []example {
	sec := p.Sections["quick examples"]
	_, rest, ok := strings.Cut(sec, "```")
	if !ok {
		return nil
	}
	// Drop the info string, if any.
	if _, after, found := strings.Cut(rest, "\n"); found {
		rest = after
	}
	code, _, ok := strings.Cut(rest, "```")
	if !ok {
		return nil
	}

	var exs []example
	var desc string
	for _, ln := range strings.Split(code, "\n") {
		s := strings.TrimSpace(ln)
		switch {
		case s == "":
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(s, "#"))
		default:
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(s), " ")})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd string, p page) string {
	var b strings.Builder

	b.WriteString("# " + program + "-" + cmd + "\n\n")
	if s := p.Summary(); s != "" {
		b.WriteString("> " + s + "\n")
	} else {
		b.WriteString("> " + program + " " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/" + program + ".\n\n")

	exs := p.Examples()
	if len(exs) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`" + program + " " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex.Desc + ":\n\n")
		b.WriteString("`" + ex.Cmd + "`\n")
	}
	return b.String()
}
