//go:build targ

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/sh"
)

// Build builds the local shimgen binary.
func Build() error {
	fmt.Println("Building shimgen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/shimgen", "./shimgen")
}

// Check runs the full verification suite, in order of correctness.
func Check() error {
	return targ.Deps(
		Tidy,
		Build,
		CheckDeclOrder,
		Lint,
		Test,
	)
}

// CheckDeclOrder reports source files whose declarations are out of standard
// order, with a diff of the expected layout.
func CheckDeclOrder() error {
	fmt.Println("Checking declaration order...")

	files, err := sourceFiles()
	if err != nil {
		return err
	}

	outOfOrder := 0

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", file, err)

			continue
		}

		if string(content) != reordered {
			outOfOrder++

			diff := textdiff.Unified(file+" (current)", file+" (reordered)", string(content), reordered)
			if diff != "" {
				fmt.Printf("\n%s\n", diff)
			}
		}
	}

	if outOfOrder > 0 {
		return fmt.Errorf("%d file(s) need reordering; run 'targ reorder-decls' to fix", outOfOrder)
	}

	fmt.Printf("All %d files are correctly ordered.\n", len(files))

	return nil
}

// Lint runs the configured linters.
func Lint() error {
	fmt.Println("Linting...")

	return sh.Run("golangci-lint", "run", "./...")
}

// ReorderDecls rewrites source files into standard declaration order.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	files, err := sourceFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", file, err)

			continue
		}

		if string(content) != reordered {
			if err := os.WriteFile(file, []byte(reordered), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}

			fmt.Printf("  Reordered: %s\n", file)
		}
	}

	return nil
}

// Test runs the unit tests.
func Test() error {
	fmt.Println("Running unit tests...")

	return sh.Run("go", "test", "-count=1", "./...")
}

// TestMutation runs the mutation-testing suite. It is slow; run it before
// releases rather than on every change.
func TestMutation() error {
	if err := targ.Deps(Test); err != nil {
		return err
	}

	return sh.Run("go", "test", "-tags=mutation", "-run", "TestMutation", "-timeout", "60m", ".")
}

// Tidy cleans up the module file.
func Tidy() error {
	return sh.Run("go", "mod", "tidy")
}

// sourceFiles lists the repo's hand-written Go files, skipping generated
// shims and tool output.
func sourceFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(".", func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			name := entry.Name()
			if name == "bin" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_shim.go") {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source tree: %w", err)
	}

	return files, nil
}
