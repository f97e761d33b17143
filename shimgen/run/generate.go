package run

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// errUnsupportedType reports a parameter or result shape the generator cannot
// round-trip through the uniform argument bag.
var errUnsupportedType = errors.New("unsupported type")

// signature is the slice of a function declaration the generator needs:
// names and type renderings for every parameter, and the result shape.
type signature struct {
	name       string
	params     []param
	resultType string // "" when the function returns no value
	hasError   bool   // trailing error result
}

type param struct {
	name     string
	typeName string
}

// extractSignature pulls parameter names/types and the result shape out of a
// function declaration.
func extractSignature(fn *dst.FuncDecl) (signature, error) {
	sig := signature{name: fn.Name.Name}

	for _, field := range fn.Type.Params.List {
		typeName, err := exprString(field.Type)
		if err != nil {
			return signature{}, fmt.Errorf("function %s: %w", sig.name, err)
		}

		if len(field.Names) == 0 {
			return signature{}, fmt.Errorf("function %s has unnamed parameters; shimgen needs names for the bound-parameter mapping", sig.name)
		}

		for _, ident := range field.Names {
			sig.params = append(sig.params, param{name: ident.Name, typeName: typeName})
		}
	}

	results := fieldTypes(fn.Type.Results)

	switch len(results) {
	case 0:
	case 1:
		if isErrorExpr(results[0]) {
			sig.hasError = true
		} else {
			typeName, err := exprString(results[0])
			if err != nil {
				return signature{}, fmt.Errorf("function %s: %w", sig.name, err)
			}

			sig.resultType = typeName
		}
	case 2:
		if !isErrorExpr(results[1]) {
			return signature{}, fmt.Errorf("function %s: shimgen supports at most one value result plus a trailing error", sig.name)
		}

		typeName, err := exprString(results[0])
		if err != nil {
			return signature{}, fmt.Errorf("function %s: %w", sig.name, err)
		}

		sig.resultType = typeName
		sig.hasError = true
	default:
		return signature{}, fmt.Errorf("function %s: shimgen supports at most one value result plus a trailing error", sig.name)
	}

	return sig, nil
}

// generateShim renders the generated source file for a signature.
func generateShim(pkgName string, sig signature) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "// Code generated by shimgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	fmt.Fprintf(&b, "import (\n")
	fmt.Fprintf(&b, "\tpsmock %q\n", "github.com/jonwagner/PSMock")
	fmt.Fprintf(&b, "\t%q\n", "github.com/jonwagner/PSMock/calltable")
	fmt.Fprintf(&b, ")\n\n")

	writeRegisterFunc(&b, sig)
	b.WriteString("\n")
	writeCallFunc(&b, sig)

	return b.String(), nil
}

// writeRegisterFunc emits Register<Name>, which registers the real function
// in a table behind a Callable that unpacks the bound-parameter mapping.
func writeRegisterFunc(b *strings.Builder, sig signature) {
	fmt.Fprintf(b, "// Register%s registers %s in the table under %q.\n", sig.name, sig.name, sig.name)
	fmt.Fprintf(b, "func Register%s(table *calltable.Table) error {\n", sig.name)
	fmt.Fprintf(b, "\treturn table.Register(%q, func(call psmock.Call) (any, error) {\n", sig.name)

	for i, p := range sig.params {
		fmt.Fprintf(b, "\t\targ%d, _ := call.Param(%q).(%s)\n", i, p.name, p.typeName)
	}

	// Unpacked locals are argN rather than the parameter names, so a
	// parameter named call or table cannot shadow the closure's own
	// identifiers.
	callExpr := fmt.Sprintf("%s(%s)", sig.name, unpackedArgList(len(sig.params)))

	switch {
	case sig.resultType != "" && sig.hasError:
		fmt.Fprintf(b, "\t\tout, err := %s\n", callExpr)
		fmt.Fprintf(b, "\t\treturn out, err\n")
	case sig.resultType != "":
		fmt.Fprintf(b, "\t\treturn %s, nil\n", callExpr)
	case sig.hasError:
		fmt.Fprintf(b, "\t\treturn nil, %s\n", callExpr)
	default:
		fmt.Fprintf(b, "\t\t%s\n", callExpr)
		fmt.Fprintf(b, "\t\treturn nil, nil\n")
	}

	fmt.Fprintf(b, "\t})\n")
	fmt.Fprintf(b, "}\n")
}

// writeCallFunc emits Call<Name>, the typed entry point that routes through
// the table so the call can be intercepted.
func writeCallFunc(b *strings.Builder, sig signature) {
	fmt.Fprintf(b, "// Call%s invokes %q through the table with a bound-parameter mapping\n", sig.name, sig.name)
	fmt.Fprintf(b, "// derived from %s's signature.\n", sig.name)

	returnType := "error"
	if sig.resultType != "" {
		returnType = fmt.Sprintf("(%s, error)", sig.resultType)
	}

	fmt.Fprintf(b, "func Call%s(table *calltable.Table%s) %s {\n", sig.name, paramDecls(sig.params), returnType)

	outNames := "out, err"
	if sig.resultType == "" {
		outNames = "_, err"
	}

	fmt.Fprintf(b, "\t%s := table.Call(%q, []any{%s}, map[string]any{%s})\n",
		outNames, sig.name, argList(sig.params), namedMapEntries(sig.params))

	if sig.resultType == "" {
		fmt.Fprintf(b, "\treturn err\n")
	} else {
		fmt.Fprintf(b, "\tif err != nil {\n")
		fmt.Fprintf(b, "\t\treturn *new(%s), err\n", sig.resultType)
		fmt.Fprintf(b, "\t}\n")
		fmt.Fprintf(b, "\tret, _ := out.(%s)\n", sig.resultType)
		fmt.Fprintf(b, "\treturn ret, nil\n")
	}

	fmt.Fprintf(b, "}\n")
}

// paramDecls renders ", name type" pairs for the Call wrapper's signature.
func paramDecls(params []param) string {
	var b strings.Builder

	for _, p := range params {
		fmt.Fprintf(&b, ", %s %s", p.name, p.typeName)
	}

	return b.String()
}

// unpackedArgList renders the comma-separated argN locals of the Register
// closure.
func unpackedArgList(count int) string {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("arg%d", i)
	}

	return strings.Join(names, ", ")
}

// argList renders the comma-separated parameter names.
func argList(params []param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.name
	}

	return strings.Join(names, ", ")
}

// namedMapEntries renders the bound-parameter map literal body.
func namedMapEntries(params []param) string {
	entries := make([]string, len(params))
	for i, p := range params {
		entries[i] = fmt.Sprintf("%q: %s", p.name, p.name)
	}

	return strings.Join(entries, ", ")
}

// fieldTypes flattens a result field list into one type expression per
// result.
func fieldTypes(fields *dst.FieldList) []dst.Expr {
	if fields == nil {
		return nil
	}

	var types []dst.Expr

	for _, field := range fields.List {
		count := max(len(field.Names), 1)
		for range count {
			types = append(types, field.Type)
		}
	}

	return types
}

// isErrorExpr reports whether a type expression is the predeclared error.
func isErrorExpr(expr dst.Expr) bool {
	ident, ok := expr.(*dst.Ident)

	return ok && ident.Name == "error"
}

// exprString renders the type expressions shimgen supports. The generator
// deliberately handles only shapes it can round-trip through the uniform
// argument bag.
func exprString(expr dst.Expr) (string, error) {
	switch e := expr.(type) {
	case *dst.Ident:
		return e.Name, nil
	case *dst.SelectorExpr:
		pkg, err := exprString(e.X)
		if err != nil {
			return "", err
		}

		return pkg + "." + e.Sel.Name, nil
	case *dst.StarExpr:
		inner, err := exprString(e.X)
		if err != nil {
			return "", err
		}

		return "*" + inner, nil
	case *dst.ArrayType:
		if e.Len != nil {
			return "", fmt.Errorf("%w: fixed-size array parameter", errUnsupportedType)
		}

		inner, err := exprString(e.Elt)
		if err != nil {
			return "", err
		}

		return "[]" + inner, nil
	case *dst.MapType:
		key, err := exprString(e.Key)
		if err != nil {
			return "", err
		}

		value, err := exprString(e.Value)
		if err != nil {
			return "", err
		}

		return "map[" + key + "]" + value, nil
	case *dst.InterfaceType:
		if len(e.Methods.List) == 0 {
			return "any", nil
		}

		return "", fmt.Errorf("%w: interface literal parameter", errUnsupportedType)
	case *dst.Ellipsis:
		return "", fmt.Errorf("%w: variadic parameter", errUnsupportedType)
	default:
		return "", fmt.Errorf("%w: expression %T", errUnsupportedType, expr)
	}
}
