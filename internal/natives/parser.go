// Package natives parses engine native-function signature files and
// emits the marshaling trampolines the plugin runtime calls through.
package natives

import (
	"log/slog"
	"strings"
)

// Param is one positional native parameter.
type Param struct {
	Type string
	Name string
}

// Signature is a parsed native function declaration.
type Signature struct {
	ReturnType string
	Name       string
	Params     []Param
	// Sync marks functions that must execute on the designated main
	// thread; the emitted trampoline asserts this before the call.
	Sync    bool
	Comment string
}

// File is one parsed native schema file.
type File struct {
	// Namespace is the dotted namespace/type path from the first line.
	Namespace string
	Functions []Signature
}

// Parse reads a native schema file. The first non-blank line is the
// dotted namespace path; each following line either matches
//
//	[sync] <returnType> <name> = <type> <name>, ... [// comment]
//
// with the literal void spelling an empty parameter list, or is
// skipped. Malformed lines are dropped without a diagnostic beyond a
// debug log entry.
func Parse(text string) *File {
	f := &File{}
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if f.Namespace == "" {
			f.Namespace = line
			continue
		}
		sig, ok := parseSignature(line)
		if !ok {
			slog.Debug("skipping unrecognized native signature line", "line", line)
			continue
		}
		f.Functions = append(f.Functions, sig)
	}
	return f
}

func parseSignature(line string) (Signature, bool) {
	var sig Signature
	if idx := strings.Index(line, "//"); idx >= 0 {
		sig.Comment = strings.TrimSpace(line[idx+2:])
		line = strings.TrimSpace(line[:idx])
	}
	if rest, ok := strings.CutPrefix(line, "sync "); ok {
		sig.Sync = true
		line = strings.TrimSpace(rest)
	}

	head, params, ok := strings.Cut(line, "=")
	if !ok {
		return Signature{}, false
	}
	parts := strings.Fields(head)
	if len(parts) != 2 {
		return Signature{}, false
	}
	sig.ReturnType, sig.Name = parts[0], parts[1]

	params = strings.TrimSpace(params)
	if params == "void" {
		return sig, true
	}
	for _, p := range strings.Split(params, ",") {
		pair := strings.Fields(p)
		if len(pair) != 2 {
			return Signature{}, false
		}
		sig.Params = append(sig.Params, Param{Type: pair[0], Name: pair[1]})
	}
	return sig, true
}
