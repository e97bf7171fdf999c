// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/lructl/internal/filters"
	"github.com/staranto/lructl/internal/lru"
	"github.com/staranto/lructl/internal/output"
)

// GlobalFlagsValidator re-checks the shared flags once every source has been
// applied. Validators on the flags themselves only run for values that were
// explicitly set.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if err := CapacityValidator(c.Int("capacity")); err != nil {
		return fmt.Errorf("--capacity %w", err)
	}
	if err := OutputValidator(c.String("output")); err != nil {
		return fmt.Errorf("--output %w", err)
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

// CapacityValidator rejects capacities the cache would refuse anyway, so the
// user hears about it before anything runs.
func CapacityValidator(value any) error {
	if n := value.(int); n <= 0 {
		return fmt.Errorf("%w, got %d", lru.ErrInvalidCapacity, n)
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

func FilterValidator(value any) error {
	_, err := filters.BuildFilters(value.(string))
	return err
}
