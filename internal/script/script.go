// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/staranto/lructl/internal/session"
)

var ErrSyntax = errors.New("syntax error")

type Kind string

const (
	Get  Kind = "get"
	Put  Kind = "put"
	Dump Kind = "dump"
)

// Op is one parsed operation. Pos is the 1-based line number (line form) or
// array element (JSON form) it came from.
type Op struct {
	Kind  Kind
	Key   int
	Value int
	Pos   int
}

func (o Op) String() string {
	switch o.Kind {
	case Put:
		return fmt.Sprintf("put %d %d", o.Key, o.Value)
	case Get:
		return fmt.Sprintf("get %d", o.Key)
	}
	return string(o.Kind)
}

// Mutates reports whether the op can change cache contents or order.
func (o Op) Mutates() bool {
	return o.Kind == Put || o.Kind == Get
}

// Parse reads a whole script. A document whose first non-blank byte is '['
// is treated as JSON, anything else as the line form.
func Parse(r io.Reader) ([]Op, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return parseJSON(trimmed)
	}
	return parseLines(b)
}

func parseLines(b []byte) ([]Op, error) {
	var ops []Op

	scanner := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		op, err := build(strings.ToLower(fields[0]), fields[1:], line, "line")
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan script: %w", err)
	}

	return ops, nil
}

func parseJSON(b []byte) ([]Op, error) {
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("%w: invalid JSON document", ErrSyntax)
	}

	var (
		ops []Op
		err error
	)
	pos := 0
	gjson.ParseBytes(b).ForEach(func(_, v gjson.Result) bool {
		pos++
		if !v.IsObject() {
			err = fmt.Errorf("%w: element %d: expected an object", ErrSyntax, pos)
			return false
		}

		var args []string
		for _, field := range []string{"key", "value"} {
			if f := v.Get(field); f.Exists() {
				args = append(args, f.String())
			}
		}

		var op Op
		op, err = build(strings.ToLower(v.Get("op").String()), args, pos, "element")
		if err != nil {
			return false
		}
		ops = append(ops, op)
		return true
	})
	if err != nil {
		return nil, err
	}

	return ops, nil
}

// build validates one operation. where names the unit Pos counts, "line" or
// "element", for error messages.
func build(verb string, args []string, pos int, where string) (Op, error) {
	op := Op{Kind: Kind(verb), Pos: pos}

	want := map[Kind]int{Get: 1, Put: 2, Dump: 0}
	n, ok := want[op.Kind]
	if !ok {
		return Op{}, fmt.Errorf("%w: %s %d: unknown operation %q", ErrSyntax, where, pos, verb)
	}
	if len(args) != n {
		return Op{}, fmt.Errorf("%w: %s %d: %s takes %d argument(s), got %d", ErrSyntax, where, pos, verb, n, len(args))
	}

	var err error
	if n >= 1 {
		if op.Key, err = session.ParseKey(args[0]); err != nil {
			return Op{}, fmt.Errorf("%s %d: %w", where, pos, err)
		}
	}
	if n == 2 {
		if op.Value, err = session.ParseValue(args[1]); err != nil {
			return Op{}, fmt.Errorf("%s %d: %w", where, pos, err)
		}
	}

	return op, nil
}
