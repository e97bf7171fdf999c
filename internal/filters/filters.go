// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
)

var ErrInvalidFilter = errors.New("invalid filter")

// filterRegex splits an expression into key, operator and target. Operators
// are one of = < > ^ @ or /, optionally prefixed with '!'.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=<>^@/])(.*)$`)

// Keys that a filter may name.
const (
	Key   = "key"
	Value = "value"
)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string

	num float64
	re  *regexp.Regexp
}

// Set is a conjunction of filters. The empty Set matches everything.
type Set []Filter

// BuildFilters parses a comma separated filter spec such as "key>2,value!=10".
// The delimiter can be overridden with LRUCTL_FILTER_DELIM.
func BuildFilters(spec string) (Set, error) {
	//nolint:prealloc
	var set Set

	// If there are no filters specified, go home early.
	if spec == "" {
		return set, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("LRUCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		f, err := parse(strings.TrimSpace(filterSpec))
		if err != nil {
			return nil, err
		}
		set = append(set, f)
	}

	log.Debugf("filters: %+v", set)
	return set, nil
}

func parse(spec string) (Filter, error) {
	parts := filterRegex.FindStringSubmatch(spec)
	if parts == nil {
		return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, spec)
	}

	f := Filter{
		Key:     strings.ToLower(strings.TrimSpace(parts[1])),
		Negate:  strings.HasPrefix(parts[2], "!"),
		Operand: strings.TrimPrefix(parts[2], "!"),
		Target:  parts[3],
	}

	if f.Key != Key && f.Key != Value {
		return Filter{}, fmt.Errorf("%w: %q: unknown key %q", ErrInvalidFilter, spec, f.Key)
	}

	var err error
	switch f.Operand {
	case "=", "<", ">":
		if f.num, err = strconv.ParseFloat(strings.TrimSpace(f.Target), 64); err != nil {
			return Filter{}, fmt.Errorf("%w: %q: invalid numeric target", ErrInvalidFilter, spec)
		}
	case "/":
		if f.re, err = regexp.Compile(f.Target); err != nil {
			return Filter{}, fmt.Errorf("%w: %q: %w", ErrInvalidFilter, spec, err)
		}
	}

	return f, nil
}

// Match reports whether the entry passes every filter in the set.
func (s Set) Match(key, value int) bool {
	for _, f := range s {
		v := key
		if f.Key == Value {
			v = value
		}
		if !f.match(v) {
			return false
		}
	}
	return true
}

func (f Filter) match(v int) bool {
	switch f.Operand {
	case "=", "<", ">":
		return checkNumericOperand(float64(v), f)
	default:
		return checkStringOperand(strconv.Itoa(v), f)
	}
}

// checkNumericOperand compares using numeric semantics. != is represented as
// Negate + "=".
func checkNumericOperand(value float64, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return (value == filter.num) == !filter.Negate
	case ">":
		return (value > filter.num) == !filter.Negate
	case "<":
		return (value < filter.num) == !filter.Negate
	default:
		log.Error("unsupported numeric operand: " + filter.Operand)
		return false
	}
}

// checkStringOperand matches against the decimal form of the value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case "/":
		return filter.re.MatchString(value) == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
