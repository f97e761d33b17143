// Package run implements the main logic for the shimgen tool in a testable
// way: the filesystem and environment are injected so tests can drive the
// generator without go:generate.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// FileSystem interface for mocking.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// errUsage reports a bad command line.
var errUsage = errors.New("usage: shimgen <FunctionName>")

// Run executes the shimgen tool logic. It takes command-line arguments, an
// environment variable getter (go:generate provides GOFILE and GOPACKAGE), a
// FileSystem for file operations, and a writer for progress output. On
// success it writes a <functionname>_shim.go file next to the source file.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, out io.Writer) error {
	if len(args) != 2 || strings.HasPrefix(args[1], "-") {
		return errUsage
	}

	funcName := args[1]

	sourceFile := getEnv("GOFILE")
	if sourceFile == "" {
		return errors.New("GOFILE is not set; run shimgen via go:generate")
	}

	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return errors.New("GOPACKAGE is not set; run shimgen via go:generate")
	}

	source, err := fileSys.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourceFile, err)
	}

	file, err := decorator.Parse(source)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sourceFile, err)
	}

	sig, err := findFunction(file, funcName)
	if err != nil {
		return err
	}

	code, err := generateShim(pkgName, sig)
	if err != nil {
		return err
	}

	outName := strings.ToLower(funcName) + "_shim.go"

	if err := fileSys.WriteFile(outName, []byte(code), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outName, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", outName)

	return nil
}

// findFunction locates the named top-level function declaration and extracts
// its signature.
func findFunction(file *dst.File, name string) (signature, error) {
	for _, decl := range file.Decls {
		fn, ok := decl.(*dst.FuncDecl)
		if !ok || fn.Name.Name != name {
			continue
		}

		if fn.Recv != nil {
			return signature{}, fmt.Errorf("%s is a method; shimgen only supports top-level functions", name)
		}

		if fn.Type.TypeParams != nil && len(fn.Type.TypeParams.List) > 0 {
			return signature{}, fmt.Errorf("%s is generic; shimgen does not support type parameters", name)
		}

		return extractSignature(fn)
	}

	return signature{}, fmt.Errorf("function %s not found in source file", name)
}
