package contract

import (
	"path"
	"reflect"
	"strings"
)

// TypeName is the naming information of a type, used by schema naming
// strategies.
type TypeName struct {
	// Name is the declared name including type arguments,
	// e.g. "Page[github.com/acme/orders.Order]".
	Name string
	// Base is Name without type arguments, e.g. "Page".
	Base string
	// Package is the last element of PackagePath.
	Package     string
	PackagePath string
	// TypeArgs are the fully qualified type arguments of a generic
	// instantiation, in declaration order.
	TypeArgs []string
	// Anonymous is set for unnamed types such as inline struct literals.
	Anonymous bool
}

// NameOf returns the TypeName of t. Pointer types are unwrapped.
func NameOf(t reflect.Type) TypeName {
	for t != nil && t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return TypeName{Anonymous: true}
	}

	n := TypeName{
		Name:        t.Name(),
		Base:        t.Name(),
		PackagePath: t.PkgPath(),
		Package:     path.Base(t.PkgPath()),
	}
	if t.PkgPath() == "" {
		n.Package = ""
	}
	if idx := strings.IndexByte(n.Name, '['); idx > 0 && strings.HasSuffix(n.Name, "]") {
		n.Base = n.Name[:idx]
		n.TypeArgs = splitTypeArgs(n.Name[idx+1 : len(n.Name)-1])
	}
	return n
}

// IsGeneric reports whether the name is a generic instantiation.
func (n TypeName) IsGeneric() bool {
	return len(n.TypeArgs) > 0
}

// String returns the package-qualified name.
func (n TypeName) String() string {
	if n.Anonymous {
		return "<anonymous>"
	}
	if n.PackagePath == "" {
		return n.Name
	}
	return n.PackagePath + "." + n.Name
}

// splitTypeArgs splits a type argument list on top-level commas.
func splitTypeArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		args = append(args, rest)
	}
	return args
}
