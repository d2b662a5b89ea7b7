package args

import (
	"strings"
)

// Meta is the read-only metadata supplied to every preprocessing step.
type Meta struct {
	// BinDir is the absolute path to the directory containing the server
	// binary. Relative path arguments are resolved against it.
	BinDir string
}

// Step is a pure transform applied to an argument value. Steps must be total
// over every Value kind: a step that does not apply to a kind passes the
// value through unchanged.
type Step func(Value, Meta) Value

// valueSteps is the fixed preprocessing order. The order is load-bearing:
// lowerBooleans must run before resolveRelativePaths so a boolean is never
// inspected as a path, and before formatFlag so the "=" prefix is attached
// exactly once, after the value has reached its final string form.
var valueSteps = [...]Step{
	lowerBooleans,
	resolveRelativePaths,
	formatFlag,
}

// lowerBooleans renders a boolean value as the lowercase token "true" or
// "false". The server's option parser accepts no other casing. Non-boolean
// values pass through unchanged.
func lowerBooleans(v Value, _ Meta) Value {
	if v.kind != kindBool {
		return v
	}
	return String(v.raw())
}

// resolveRelativePaths prefixes a string value starting with "./" or "../"
// with the server binary's directory. The launch command names the binary by
// absolute path, so a path left relative would resolve against whatever the
// caller's working directory happens to be instead of the binary directory
// the value was written against.
//
// The join is plain concatenation: ".." segments are preserved, not
// lexically collapsed, so the result still names the same file when the
// binary directory is (or contains) a symlink. All relative paths are
// assumed to be relative to the binary directory; values relative to
// anything else will not resolve correctly.
func resolveRelativePaths(v Value, m Meta) Value {
	if v.kind != kindString {
		return v
	}
	if !strings.HasPrefix(v.s, "./") && !strings.HasPrefix(v.s, "../") {
		return v
	}
	return String(m.BinDir + "/" + strings.TrimPrefix(v.s, "./"))
}

// formatFlag is the terminal step: it renders the "=<value>" suffix for
// value-carrying arguments, and an empty suffix for the no-value flag
// sentinel so the argument appears as a bare "-name" token.
func formatFlag(v Value, _ Meta) Value {
	if v.kind == kindFlag {
		return String("")
	}
	return String("=" + v.raw())
}

// preprocess applies every step to v in the fixed order and returns the
// final suffix string for the rendered token.
func preprocess(v Value, m Meta) string {
	for _, step := range valueSteps {
		v = step(v, m)
	}
	return v.s
}

// Render produces the complete command-line token for one argument.
func Render(name string, v Value, m Meta) string {
	return "-" + name + preprocess(v, m)
}
