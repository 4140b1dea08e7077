// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func boolPtr(b bool) *bool { return &b }

// ── merge ─────────────────────────────────────────────────────────────────────

// TestMerge_EmptyBuilder verifies that merging nothing yields a zero config.
func TestMerge_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().merge()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestMerge_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestMerge_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.merge()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestMerge_LaterSourceWins verifies that later non-zero fields override
// earlier ones and zero fields keep the earlier value.
func TestMerge_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenIssuer: "from-env", TokenTTLMinutes: 5}},
		&StructuredConfig{App: App{TokenIssuer: "from-flags"}},
	)

	cfg, err := b.merge()
	require.NoError(t, err)
	assert.Equal(t, "from-flags", cfg.App.TokenIssuer)
	assert.Equal(t, 5, cfg.App.TokenTTLMinutes)
	assert.Equal(t, DefaultTokenSignKey, cfg.App.TokenSignKey)
}

// TestMerge_ExplicitFalseOverridesDefault verifies that ownership scoping
// can be switched off even though it defaults to on.
func TestMerge_ExplicitFalseOverridesDefault(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{App: App{ScopeSecretsToOwner: boolPtr(false)}})

	cfg, err := b.merge()
	require.NoError(t, err)
	assert.False(t, cfg.App.ScopeToOwner())
}

// TestMerge_NilBoolKeepsDefault verifies that an unset pointer does not
// override the default.
func TestMerge_NilBoolKeepsDefault(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{})

	cfg, err := b.merge()
	require.NoError(t, err)
	assert.True(t, cfg.App.ScopeToOwner())
}

// TestMerge_DefaultsNotMutated verifies that merging does not write through
// into a later defaults instance.
func TestMerge_DefaultsNotMutated(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{App: App{ScopeSecretsToOwner: boolPtr(false)}})
	_, err := b.merge()
	require.NoError(t, err)

	assert.True(t, defaultConfig().App.ScopeToOwner())
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_DefaultsAreValid verifies that the built-in defaults pass
// validation on their own.
func TestBuild_DefaultsAreValid(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.App.TokenTTL())
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

// TestBuild_ValidationFailure verifies that an invalid merged config is
// rejected.
func TestBuild_ValidationFailure(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs, &StructuredConfig{App: App{TokenSignKey: "short"}})

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── withFlags / withJSON ──────────────────────────────────────────────────────

// TestWithFlags_BadFlag verifies that a flag parse error is recorded.
func TestWithFlags_BadFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-no-such-flag"})
	assert.Error(t, b.err)
}

// TestWithJSON_NoPath verifies that nothing is appended without a path.
func TestWithJSON_NoPath(t *testing.T) {
	b := newConfigBuilder().withDefaults().withJSON()
	assert.Len(t, b.configs, 1)
}

// TestWithJSON_UsesLastPath verifies that the JSON file named by the latest
// source is loaded and wins over previous sources.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"token_issuer": "first"}})
	second := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"token_issuer": "second"}})

	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.App.TokenIssuer)
}

// TestWithJSON_MissingFile verifies that an unreadable file is an error.
func TestWithJSON_MissingFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	_, err := b.withJSON().build()
	assert.Error(t, err)
}

// TestBuild_FullChain verifies the defaults → env → flags → JSON order.
func TestBuild_FullChain(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"rate_limit": 42},
	})
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")
	t.Setenv("SERVER_RATE_LIMIT", "7")
	t.Setenv("STORAGE_DB_DATABASE_URI", "memory")

	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-token-issuer", "flag-issuer", "-c", path}).
		withJSON().
		build()
	require.NoError(t, err)

	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 42, cfg.Server.RateLimit)
	assert.Equal(t, MemoryDSN, cfg.Storage.DB.DSN)
}
