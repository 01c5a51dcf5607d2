package conformance

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

// TestPath is the directory holding the YAML suites, relative to this package
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests loads every suite under TestPath
func LoadAllTests() ([]LoadedTest, error) {
	// Try multiple path resolutions since tests run from different locations
	candidates := []string{
		TestPath,
		filepath.Join("conformance", TestPath),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return LoadDir(candidate)
		}
	}
	return nil, fmt.Errorf("could not find conformance test directory (tried %v)", candidates)
}

// LoadDir walks dir and loads all test cases from its .yaml files
func LoadDir(dir string) ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Only process .yaml files
		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		// Get relative path for cleaner test names
		relPath, _ := filepath.Rel(dir, path)

		tests, err := LoadFile(path)
		if err != nil {
			// Log error but continue with the remaining files
			log.Warnf("skipping %s: %v", relPath, err)
			return nil
		}

		for _, test := range tests {
			test.File = relPath
			loaded = append(loaded, test)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loaded, nil
}

// LoadFile parses a single YAML file and returns all test cases
func LoadFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tests := make([]LoadedTest, 0, len(suite.Tests))
	for _, test := range suite.Tests {
		tests = append(tests, LoadedTest{
			File:  path,
			Suite: suite,
			Test:  test,
		})
	}

	return tests, nil
}
