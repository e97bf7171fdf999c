// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package script reads cache operation scripts for non-interactive replay.
//
// The line form holds one operation per line:
//
//	# comments and blank lines are skipped
//	put 1 10
//	get 1
//	dump
//
// The JSON form is an array of objects:
//
//	[{"op": "put", "key": 1, "value": 10}, {"op": "get", "key": 1}]
package script
