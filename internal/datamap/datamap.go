// Package datamap turns a JSON dump of engine datamap classes into
// offset-based field bindings. The dump is produced by a companion
// plugin at runtime and fed back into generation.
package datamap

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/swiftly-solution/codegen/internal/idents"
	"github.com/swiftly-solution/codegen/internal/templates"
	"github.com/swiftly-solution/codegen/version"
)

// Dump is the top-level JSON document.
type Dump struct {
	Classes []Class `json:"classes"`
}

// Class is one datamap class with its members in declaration order.
type Class struct {
	Name    string   `json:"name"`
	Parent  string   `json:"parent"`
	Members []Member `json:"members"`
}

// Member is one datamap field.
type Member struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset int    `json:"offset"`
}

// memberTypes maps dump type tokens to accessor strategies. Unknown
// tokens are skipped with a debug log line.
var memberTypes = map[string]string{
	"int8":    "sbyte",
	"uint8":   "byte",
	"int16":   "short",
	"uint16":  "ushort",
	"int32":   "int",
	"uint32":  "uint",
	"int64":   "long",
	"uint64":  "ulong",
	"float32": "float",
	"float64": "double",
	"bool":    "bool",
	"string":  "string",
	"vector":  "Vector",
	"qangle":  "QAngle",
	"color32": "Color",
	"ehandle": "CEntityHandle",
}

// Parse decodes a datamap dump.
func Parse(data []byte) (*Dump, error) {
	var d Dump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode datamap dump: %w", err)
	}
	return &d, nil
}

// Result reports what an emission pass produced.
type Result struct {
	Files int
}

type binding struct {
	Ident  string
	CSType string
	Offset int
}

type classData struct {
	Version   string
	ClassName string
	RawName   string
	Parent    string
	Bindings  []binding
}

// Emit writes one contract and implementation pair per class.
func Emit(d *Dump, outDir string) (*Result, error) {
	res := &Result{}
	for _, c := range d.Classes {
		data := classData{
			Version:   version.Version,
			ClassName: idents.Exported(c.Name),
			RawName:   c.Name,
			Parent:    c.Parent,
		}
		scope := idents.NewScope()
		for _, m := range c.Members {
			cs, ok := memberTypes[m.Type]
			if !ok {
				slog.Debug("skipping datamap member with unknown type", "class", c.Name, "member", m.Name, "type", m.Type)
				continue
			}
			data.Bindings = append(data.Bindings, binding{
				Ident:  scope.Claim(memberIdent(m.Name)),
				CSType: cs,
				Offset: m.Offset,
			})
		}

		pairs := []struct{ tmpl, path string }{
			{"datamap_interface.cs.tmpl", filepath.Join(outDir, "interfaces", "I"+data.ClassName+".cs")},
			{"datamap_impl.cs.tmpl", filepath.Join(outDir, "implementations", data.ClassName+".cs")},
		}
		for _, p := range pairs {
			content, err := templates.Render(p.tmpl, nil, data)
			if err != nil {
				return nil, err
			}
			if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
				return nil, err
			}
			if err := os.WriteFile(p.path, []byte(content), 0644); err != nil {
				return nil, err
			}
			res.Files++
		}
	}
	return res, nil
}

// hungarianTags are the engine's member type tags, stripped after the
// m_ prefix when a PascalCase name follows. Lowercase runs outside
// this set (m_lifeState) are part of the name.
var hungarianTags = map[string]bool{
	"b": true, "ch": true, "clr": true, "f": true, "fl": true,
	"h": true, "i": true, "n": true, "p": true, "q": true,
	"s": true, "sz": true, "ub": true, "un": true, "vec": true,
}

// memberIdent converts an engine member name: m_iHealth to Health,
// m_lifeState to LifeState.
func memberIdent(raw string) string {
	name := strings.TrimPrefix(raw, "m_")
	run := 0
	for run < len(name) && name[run] >= 'a' && name[run] <= 'z' {
		run++
	}
	if run > 0 && run < len(name) && unicode.IsUpper(rune(name[run])) && hungarianTags[name[:run]] {
		name = name[run:]
	}
	if name == strings.ToLower(name) {
		return idents.Identifier(name)
	}
	return idents.Exported(name)
}
