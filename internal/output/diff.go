// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// Diff describes how after differs from before as an annotated JSON listing,
// or returns "" when they are the same.
func Diff(before, after Document, color bool) (string, error) {
	left, err := json.Marshal(before)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	right, err := json.Marshal(after)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	d, err := gojsondiff.New().Compare(left, right)
	if err != nil {
		return "", fmt.Errorf("failed to compare snapshots: %w", err)
	}
	if !d.Modified() {
		return "", nil
	}

	var leftObj map[string]interface{}
	if err := json.Unmarshal(left, &leftObj); err != nil {
		return "", fmt.Errorf("failed to decode snapshot: %w", err)
	}

	f := formatter.NewAsciiFormatter(leftObj, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       color,
	})
	return f.Format(d)
}
