package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codtech/libraryd/pkg/library"
)

// LoadSeedFiles expands each doublestar pattern and merges the YAML seed files
// it matches, in pattern order then lexical file order. Relative patterns are
// resolved against baseDir. A pattern matching nothing is an error.
// The returned slice lists the files read.
func LoadSeedFiles(patterns []string, baseDir string) (library.Seed, []string, error) {
	var (
		seed  library.Seed
		files []string
	)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		full := pattern
		if !filepath.IsAbs(full) && baseDir != "" {
			full = filepath.Join(baseDir, pattern)
		}

		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return library.Seed{}, nil, fmt.Errorf("invalid seed pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return library.Seed{}, nil, fmt.Errorf("%w: no seed files match %q", ErrFileNotFound, pattern)
		}
		slices.Sort(matches)

		for _, path := range matches {
			if seen[path] {
				continue
			}
			seen[path] = true

			part, err := loadSeedFile(path)
			if err != nil {
				return library.Seed{}, nil, err
			}
			seed.Merge(part)
			files = append(files, path)
		}
	}
	return seed, files, nil
}

func loadSeedFile(path string) (library.Seed, error) {
	data, err := readFile(path)
	if err != nil {
		return library.Seed{}, err
	}
	var seed library.Seed
	if err := decodeYAML(data, &seed); err != nil {
		return library.Seed{}, fmt.Errorf("%w in seed file %s: %v", ErrInvalidYAML, path, err)
	}
	return seed, nil
}

// BuildSeed assembles the catalog seed: the built-in records when
// catalog.seedDefault is set, followed by every configured seed file.
func (c *Config) BuildSeed() (library.Seed, []string, error) {
	var seed library.Seed
	if c.Catalog.SeedDefault {
		seed = library.DefaultSeed()
	}
	if len(c.Catalog.SeedFiles) == 0 {
		return seed, nil, nil
	}

	extra, files, err := LoadSeedFiles(c.Catalog.SeedFiles, c.Dir)
	if err != nil {
		return library.Seed{}, nil, err
	}
	seed.Merge(extra)
	return seed, files, nil
}
