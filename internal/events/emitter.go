package events

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/swiftly-solution/codegen/internal/idents"
	"github.com/swiftly-solution/codegen/internal/templates"
	"github.com/swiftly-solution/codegen/version"
)

// Result reports what an emission pass produced.
type Result struct {
	Files    int
	Warnings []string
}

// Binding is one generated accessor over the event data store.
// A player-handle field expands into four bindings sharing one Key.
type Binding struct {
	Ident    string
	Key      string
	CSType   string
	Getter   string
	Setter   string // empty for read-only bindings
	Comment  string
}

type eventData struct {
	Version   string
	ClassName string
	RawName   string
	Comment   string
	Hash      string
	Bindings  []Binding
}

// Hash returns the 32-bit FNV-1a identity hash of an event name. The
// runtime dispatches on these values, so they must be pairwise
// distinct across all generated events.
func Hash(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return h.Sum32()
}

// Emit writes the paired contract and implementation for every
// non-wrapper event in the schema under outDir. Identity-hash
// collisions are reported as warnings; generation proceeds with the
// colliding hashes.
func Emit(s *Schema, outDir string) (*Result, error) {
	res := &Result{}
	seen := make(map[uint32]string)

	for _, ev := range s.Events() {
		if ev.Wrapper() {
			continue
		}
		h := Hash(ev.Name)
		if prev, ok := seen[h]; ok {
			warn := fmt.Sprintf("event identity hash collision: %q and %q share 0x%08x", prev, ev.Name, h)
			slog.Warn("hash collision between generated events", "first", prev, "second", ev.Name, "hash", h)
			res.Warnings = append(res.Warnings, warn)
		} else {
			seen[h] = ev.Name
		}

		data := eventData{
			Version:   version.Version,
			ClassName: "Event" + idents.Identifier(ev.Name),
			RawName:   ev.Name,
			Comment:   ev.Comment,
			Hash:      fmt.Sprintf("0x%08X", h),
			Bindings:  classify(ev),
		}

		pairs := []struct{ tmpl, path string }{
			{"event_interface.cs.tmpl", filepath.Join(outDir, "interfaces", "I"+data.ClassName+".cs")},
			{"event_impl.cs.tmpl", filepath.Join(outDir, "implementations", data.ClassName+".cs")},
		}
		for _, p := range pairs {
			content, err := templates.Render(p.tmpl, nil, data)
			if err != nil {
				return nil, err
			}
			if err := writeFile(p.path, content); err != nil {
				return nil, err
			}
			res.Files++
		}
	}
	return res, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// classify turns an event's fields into binding descriptors. Player
// handle fields expand into controller, pawn, resolved-player and raw
// integer accessors over the same storage key; everything else binds
// through the event type table.
func classify(ev *Event) []Binding {
	scope := idents.NewScope()
	var out []Binding
	for _, f := range ev.Fields() {
		if idents.IsPlayerHandle(f.Type, f.Name) {
			out = append(out, expandPlayerHandle(scope, f)...)
			continue
		}
		acc, ok := idents.EventType(f.Type)
		if !ok {
			slog.Debug("skipping event field of unknown type", "event", ev.Name, "field", f.Name, "type", f.Type)
			continue
		}
		out = append(out, Binding{
			Ident:   scope.Claim(idents.Identifier(f.Name)),
			Key:     f.Name,
			CSType:  acc.CSType,
			Getter:  fmt.Sprintf("Data.Get%s(%q)", acc.Kind, f.Name),
			Setter:  fmt.Sprintf("Data.Set%s(%q, value)", acc.Kind, f.Name),
			Comment: f.Comment,
		})
	}
	return out
}

func expandPlayerHandle(scope *idents.Scope, f *Field) []Binding {
	base := idents.Identifier(f.Name)
	key := f.Name
	return []Binding{
		{
			Ident:   scope.Claim(base + "Controller"),
			Key:     key,
			CSType:  "CCSPlayerController",
			Getter:  fmt.Sprintf("Data.GetPlayerController(%q)", key),
			Setter:  fmt.Sprintf("Data.SetPlayerController(%q, value)", key),
			Comment: f.Comment,
		},
		{
			Ident:   scope.Claim(base + "Pawn"),
			Key:     key,
			CSType:  "CCSPlayerPawn",
			Getter:  fmt.Sprintf("Data.GetPlayerPawn(%q)", key),
			Setter:  fmt.Sprintf("Data.SetPlayerPawn(%q, value)", key),
			Comment: f.Comment,
		},
		{
			Ident:   scope.Claim(base),
			Key:     key,
			CSType:  "IPlayer",
			Getter:  fmt.Sprintf("Data.GetPlayer(%q)", key),
			Comment: f.Comment,
		},
		{
			Ident:   scope.Claim(base + "Value"),
			Key:     key,
			CSType:  "int",
			Getter:  fmt.Sprintf("Data.GetInt32(%q)", key),
			Setter:  fmt.Sprintf("Data.SetInt32(%q, value)", key),
			Comment: f.Comment,
		},
	}
}
