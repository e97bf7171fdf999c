// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig points LRUCTL_CFG at a testdata file and clears the global
// Config so the next lookup reloads it.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err)

	t.Setenv("LRUCTL_CFG", absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, 5, cfg.Data["capacity"])
				assert.Equal(t, "json", cfg.Data["output"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				replay, ok := cfg.Data["replay"].(map[string]interface{})
				require.True(t, ok, "replay should be a map")
				assert.Equal(t, 8, replay["capacity"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_Namespace(t *testing.T) {
	setupTestConfig(t, "nested.yaml")

	cfg, err := Load("replay")
	require.NoError(t, err)
	assert.Equal(t, "replay", cfg.Namespace)
	assert.Equal(t, "replay", Config.Namespace)
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("LRUCTL_CFG", "/nonexistent/path/lructl.yaml")
	Config = Type{}

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_ConfigIsDirectory(t *testing.T) {
	t.Setenv("LRUCTL_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_StandardLocations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("capacity: 9\n"), 0o600))

	t.Setenv("LRUCTL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Source)
	assert.Equal(t, 9, cfg.Data["capacity"])
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		namespace    string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "top level", testFile: "simple.yaml", key: "output", want: "json"},
		{name: "nested", testFile: "nested.yaml", key: "colors.title", want: "#ff0000"},
		{name: "namespaced wins", testFile: "nested.yaml", namespace: "replay", key: "output", want: "raw"},
		{name: "missing with default", testFile: "simple.yaml", key: "missing", defaultValue: []string{"x"}, want: "x"},
		{name: "missing without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "not a string", testFile: "simple.yaml", key: "capacity", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)
			_, err := Load(tt.namespace)
			require.NoError(t, err)

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		namespace    string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int value", testFile: "simple.yaml", key: "capacity", want: 5},
		{name: "float truncated", testFile: "mixed-types.yaml", key: "ratio", want: 2},
		{name: "namespace fallback to top level", testFile: "nested.yaml", namespace: "demo", key: "capacity", want: 3},
		{name: "namespaced value", testFile: "nested.yaml", namespace: "replay", key: "capacity", want: 8},
		{name: "missing with default", testFile: "simple.yaml", key: "padding", defaultValue: []int{1}, want: 1},
		{name: "not an int", testFile: "simple.yaml", key: "output", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)
			_, err := Load(tt.namespace)
			require.NoError(t, err)

			got, err := GetInt(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetBool(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	got, err := GetBool("color")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = GetBool("titles", true)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = GetBool("name")
	assert.Error(t, err)
}

func TestLazyLoad(t *testing.T) {
	setupTestConfig(t, "simple.yaml")

	val, err := GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "json", val)
	assert.NotEmpty(t, Config.Source)
}

func TestGetStringSlice(t *testing.T) {
	setupTestConfig(t, "mixed-types.yaml")

	got, err := GetStringSlice("tags")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = GetStringSlice("name")
	assert.Error(t, err)

	got, err = GetStringSlice("missing", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)

	setupTestConfig(t, "nested.yaml")
	_, err = Load("replay")
	require.NoError(t, err)

	got, err = GetStringSlice("fast")
	require.NoError(t, err)
	assert.Equal(t, []string{"--quiet", "--capacity 2"}, got)
}
