// psmock/shimgen is a tool to generate typed call shims for functions routed
// through a psmock call table. To use it, install it with
// `go install github.com/jonwagner/PSMock/shimgen@latest` and add a
// `//go:generate shimgen <FunctionName>` comment next to the function. The
// generated file provides Register<FunctionName>, which registers the real
// implementation in a table under the function's name with a bound-parameter
// mapping derived from its signature, and Call<FunctionName>, a typed entry
// point that routes calls through the table so they can be intercepted.
package main

import (
	"fmt"
	"os"

	"github.com/jonwagner/PSMock/shimgen/run"
)

// main is the entry point of the shimgen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem against the host filesystem.
type realFileSystem struct{}

func (realFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}
