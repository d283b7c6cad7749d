package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvAddress, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":4280", cfg.Server.Address)
	assert.True(t, cfg.Catalog.SeedDefault)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvAddress, "")
	t.Setenv(EnvLogLevel, "")

	dir := t.TempDir()
	path := writeFile(t, dir, "libraryd.yaml", `
server:
  address: "127.0.0.1:9000"
  writeTimeout: 30s
  maxConnections: 50
log:
  level: debug
  format: json
catalog:
  idStrategy: uuid
  strictReferences: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout, "unset keys keep defaults")
	assert.Equal(t, 50, cfg.Server.MaxConnections)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "uuid", cfg.Catalog.IDStrategy)
	assert.True(t, cfg.Catalog.StrictReferences)
	assert.True(t, cfg.Catalog.SeedDefault)
	assert.Equal(t, dir, cfg.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "libraryd.yaml", "log:\n  level: warn\n")
	t.Setenv(EnvAddress, ":7000")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Address)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr error
		errMsg  string
	}{
		{
			name:    "missing file",
			path:    filepath.Join(dir, "missing.yaml"),
			wantErr: ErrFileNotFound,
		},
		{
			name:    "empty file",
			path:    writeFile(t, dir, "empty.yaml", "  \n"),
			wantErr: ErrEmptyFile,
		},
		{
			name:    "bad syntax",
			path:    writeFile(t, dir, "bad.yaml", "server: [unclosed\n"),
			wantErr: ErrInvalidYAML,
		},
		{
			name:    "unknown key",
			path:    writeFile(t, dir, "unknown.yaml", "server:\n  port: 80\n"),
			wantErr: ErrInvalidYAML,
		},
		{
			name:   "directory",
			path:   dir,
			errMsg: "is a directory",
		},
		{
			name:   "invalid values",
			path:   writeFile(t, dir, "invalid.yaml", "log:\n  level: loud\n"),
			errMsg: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, "")
			_, err := Load(tt.path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		paths  []string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "empty address",
			modify: func(c *Config) { c.Server.Address = "" },
			paths:  []string{"server.address"},
		},
		{
			name: "negative values",
			modify: func(c *Config) {
				c.Server.ReadTimeout = -time.Second
				c.Server.ShutdownTimeout = -time.Second
				c.Server.MaxConnections = -1
			},
			paths: []string{"server.readTimeout", "server.shutdownTimeout", "server.maxConnections"},
		},
		{
			name: "bad log settings",
			modify: func(c *Config) {
				c.Log.Level = "verbose"
				c.Log.Format = "xml"
			},
			paths: []string{"log.level", "log.format"},
		},
		{
			name:   "unknown id strategy",
			modify: func(c *Config) { c.Catalog.IDStrategy = "snowflake" },
			paths:  []string{"catalog.idStrategy"},
		},
		{
			name:   "bad glob",
			modify: func(c *Config) { c.Catalog.SeedFiles = []string{"ok/*.yaml", "bad/[.yaml"} },
			paths:  []string{"catalog.seedFiles[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			if len(tt.paths) == 0 {
				assert.NoError(t, err)
				return
			}

			var result *ValidationResult
			require.ErrorAs(t, err, &result)
			got := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				got = append(got, e.Path)
			}
			assert.Equal(t, tt.paths, got)
			assert.Contains(t, result.Error(), "invalid configuration")
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "log.level: bad", ValidationError{Path: "log.level", Message: "bad"}.Error())
	assert.Equal(t, "bad", ValidationError{Message: "bad"}.Error())
	assert.Empty(t, (&ValidationResult{}).Error())
}

// =============================================================================
// Seed files
// =============================================================================

const dunes = `
books:
  - title: Dune
    author: Frank Herbert
    isbn: "9780441172719"
    category: Science Fiction
    publishedYear: 1965
    available: true
authors:
  - name: Frank Herbert
    bio: American science fiction author
`

const categories = `
categories:
  - id: scifi
    name: Science Fiction
    description: Speculative fiction
`

func TestLoadSeedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seeds/b/dune.yaml", dunes)
	writeFile(t, dir, "seeds/a/categories.yaml", categories)
	writeFile(t, dir, "seeds/readme.txt", "not yaml")

	seed, files, err := LoadSeedFiles([]string{"seeds/**/*.yaml"}, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "seeds/a/categories.yaml"),
		filepath.Join(dir, "seeds/b/dune.yaml"),
	}, files)

	require.Len(t, seed.Books, 1)
	assert.Equal(t, "Dune", seed.Books[0].Title)
	assert.Equal(t, 1965, seed.Books[0].PublishedYear)
	assert.Empty(t, seed.Books[0].ID)
	require.Len(t, seed.Authors, 1)
	require.Len(t, seed.Categories, 1)
	assert.Equal(t, "scifi", seed.Categories[0].ID)
}

func TestLoadSeedFiles_OverlappingPatternsReadOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dune.yaml", dunes)

	seed, files, err := LoadSeedFiles([]string{"*.yaml", "dune.yaml"}, dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Len(t, seed.Books, 1)
}

func TestLoadSeedFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "typo.yaml", "books:\n  - titel: Dune\n")

	_, _, err := LoadSeedFiles([]string{"nothing/*.yaml"}, dir)
	assert.True(t, errors.Is(err, ErrFileNotFound))

	_, _, err = LoadSeedFiles([]string{"typo.yaml"}, dir)
	assert.True(t, errors.Is(err, ErrInvalidYAML))
	assert.Contains(t, err.Error(), "typo.yaml")
}

func TestBuildSeed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dune.yaml", dunes)

	cfg := Default()
	seed, files, err := cfg.BuildSeed()
	require.NoError(t, err)
	assert.Nil(t, files)
	assert.Len(t, seed.Books, 3)

	cfg.Dir = dir
	cfg.Catalog.SeedFiles = []string{"dune.yaml"}
	seed, files, err = cfg.BuildSeed()
	require.NoError(t, err)
	assert.Len(t, files, 1)
	require.Len(t, seed.Books, 4)
	assert.Equal(t, "Dune", seed.Books[3].Title)

	cfg.Catalog.SeedDefault = false
	seed, _, err = cfg.BuildSeed()
	require.NoError(t, err)
	assert.Len(t, seed.Books, 1)
	assert.Empty(t, seed.Categories)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv(EnvAddress, "")
	t.Setenv(EnvLogLevel, "warn")
	os.Unsetenv(EnvAddress)

	path := writeFile(t, t.TempDir(), ".env", "LIBRARYD_ADDRESS=:5000\nLIBRARYD_LOG_LEVEL=debug\n")
	require.NoError(t, LoadEnvFile(path))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Log.Level, "variables already set win")

	err = LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.True(t, errors.Is(err, ErrFileNotFound))
}
