package analysis

import (
	"maps"
	"slices"
	"strings"
)

// Tables lists the globals and methods known to be free of side effects.
// A Tables value is never modified after construction; With returns an
// extended copy.
type Tables struct {
	constructors        map[string]bool
	functions           map[string]bool
	qualifiedFunctions  map[string]bool
	receiverFreeMethods map[string]bool
	regexpMethods       map[string]bool
	stringRegexpMethods map[string]bool
}

var defaultTables = computeDefaultTables()

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	return defaultTables
}

func setOf(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func computeDefaultTables() *Tables {
	return &Tables{
		// "new X()" for these has no effect beyond allocating.
		constructors: setOf("Array", "Date", "Error", "Object", "RegExp", "XMLHttpRequest"),

		// Called as plain functions these only convert their argument.
		functions: setOf("Object", "Array", "String", "Number", "Boolean", "RegExp", "Error"),

		qualifiedFunctions: setOf("Math.floor"),

		// Pure when called with no arguments.
		receiverFreeMethods: setOf("toString", "valueOf"),

		regexpMethods:       setOf("test", "exec"),
		stringRegexpMethods: setOf("match", "replace", "search", "split"),
	}
}

// Extension lists extra names to treat as pure.
type Extension struct {
	// Functions are global function names, or dotted names such as
	// "Math.abs" rooted at a global.
	Functions []string

	// Constructors are global names safe to call with "new".
	Constructors []string
}

// With returns a copy of t extended by ext.
func (t *Tables) With(ext Extension) *Tables {
	out := &Tables{
		constructors:        maps.Clone(t.constructors),
		functions:           maps.Clone(t.functions),
		qualifiedFunctions:  maps.Clone(t.qualifiedFunctions),
		receiverFreeMethods: t.receiverFreeMethods,
		regexpMethods:       t.regexpMethods,
		stringRegexpMethods: t.stringRegexpMethods,
	}
	for _, name := range ext.Functions {
		if strings.Contains(name, ".") {
			out.qualifiedFunctions[name] = true
		} else {
			out.functions[name] = true
		}
	}
	for _, name := range ext.Constructors {
		out.constructors[name] = true
	}
	return out
}

func (t *Tables) IsPureConstructor(name string) bool    { return t.constructors[name] }
func (t *Tables) IsPureFunction(name string) bool       { return t.functions[name] }
func (t *Tables) IsPureQualifiedFunction(q string) bool { return t.qualifiedFunctions[q] }
func (t *Tables) IsReceiverFreeMethod(name string) bool { return t.receiverFreeMethods[name] }
func (t *Tables) IsRegExpMethod(name string) bool       { return t.regexpMethods[name] }
func (t *Tables) IsStringRegExpMethod(name string) bool { return t.stringRegexpMethods[name] }

// PureFunctionNames lists every pure function name, sorted.
func (t *Tables) PureFunctionNames() []string {
	names := slices.Collect(maps.Keys(t.functions))
	names = append(names, slices.Collect(maps.Keys(t.qualifiedFunctions))...)
	slices.Sort(names)
	return names
}

// PureConstructorNames lists every pure constructor name, sorted.
func (t *Tables) PureConstructorNames() []string {
	return slices.Sorted(maps.Keys(t.constructors))
}
