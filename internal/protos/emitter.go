package protos

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jhump/protoreflect/desc"

	"github.com/swiftly-solution/codegen/internal/idents"
	"github.com/swiftly-solution/codegen/internal/templates"
	"github.com/swiftly-solution/codegen/internal/textbuf"
	"github.com/swiftly-solution/codegen/version"
)

// Result reports what an emission pass produced.
type Result struct {
	Files    int
	Warnings []string
}

type fileData struct {
	Version string
	Source  string
	Blocks  []string
}

// Emit writes enums and paired message artifacts for every requested
// file under outDir. Imported files contribute type resolution only.
func (a *Adapter) Emit(outDir string) (*Result, error) {
	res := &Result{}
	for _, f := range a.files {
		a.recordEnums(f)
	}
	ids, warnings := Correlate(a.files)
	res.Warnings = warnings

	for _, f := range a.files {
		if err := a.emitFile(f, ids, outDir, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (a *Adapter) emitFile(f *desc.FileDescriptor, ids map[string]int32, outDir string, res *Result) error {
	if blocks := a.enumBlocks(f); len(blocks) > 0 {
		data := fileData{Version: version.Version, Source: f.GetName(), Blocks: blocks}
		path := filepath.Join(outDir, "enumerations", fileBase(f)+"Enums.cs")
		if err := renderTo("proto_enums.cs.tmpl", path, data); err != nil {
			return err
		}
		res.Files++
	}

	for _, m := range f.GetMessageTypes() {
		if Denied(m.GetName()) {
			continue
		}
		var contracts, impls []string
		a.renderMessage(m, ids, &contracts, &impls)
		name := m.GetName()
		pairs := []struct {
			tmpl, path string
			blocks     []string
		}{
			{"proto_interface.cs.tmpl", filepath.Join(outDir, "interfaces", "I"+name+".cs"), contracts},
			{"proto_impl.cs.tmpl", filepath.Join(outDir, "implementations", name+".cs"), impls},
		}
		for _, p := range pairs {
			data := fileData{Version: version.Version, Source: f.GetName(), Blocks: p.blocks}
			if err := renderTo(p.tmpl, p.path, data); err != nil {
				return err
			}
			res.Files++
		}
	}
	return nil
}

func renderTo(tmpl, path string, data fileData) error {
	content, err := templates.Render(tmpl, nil, data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func fileBase(f *desc.FileDescriptor) string {
	base := strings.TrimSuffix(filepath.Base(f.GetName()), ".proto")
	return idents.Identifier(base)
}

// enumBlocks renders the file's enums, then every message's enums
// recursively with their dotted-name prefixes flattened.
func (a *Adapter) enumBlocks(f *desc.FileDescriptor) []string {
	var blocks []string
	for _, en := range f.GetEnumTypes() {
		if !Denied(en.GetName()) {
			blocks = append(blocks, renderEnum(en))
		}
	}
	for _, m := range f.GetMessageTypes() {
		collectMessageEnums(m, &blocks)
	}
	return blocks
}

func collectMessageEnums(m *desc.MessageDescriptor, blocks *[]string) {
	for _, en := range m.GetNestedEnumTypes() {
		if !Denied(en.GetName()) {
			*blocks = append(*blocks, renderEnum(en))
		}
	}
	for _, nested := range m.GetNestedMessageTypes() {
		collectMessageEnums(nested, blocks)
	}
}

func renderEnum(en *desc.EnumDescriptor) string {
	w := textbuf.New()
	w.Line("public enum %s", flatName(dottedName(en)))
	w.Line("{")
	w.Push()
	for _, v := range en.GetValues() {
		w.Line("%s = %d,", v.GetName(), v.GetNumber())
	}
	w.Pop()
	w.Line("}")
	return strings.TrimRight(w.String(), "\n")
}

// renderMessage emits nested message types before finalizing the
// enclosing type, all under dotted names flattened into one file pair.
func (a *Adapter) renderMessage(m *desc.MessageDescriptor, ids map[string]int32, contracts, impls *[]string) {
	for _, nested := range m.GetNestedMessageTypes() {
		if Denied(nested.GetName()) {
			continue
		}
		a.renderMessage(nested, ids, contracts, impls)
	}

	scope := idents.NewScope()
	var bindings []FieldBinding
	for _, f := range m.GetFields() {
		if b, ok := a.classifyField(scope, f); ok {
			bindings = append(bindings, b)
		}
	}

	wire, isNet := ids[m.GetName()]
	*contracts = append(*contracts, renderContract(m, bindings, isNet))
	*impls = append(*impls, renderImpl(m, bindings, wire, isNet))
}

func renderContract(m *desc.MessageDescriptor, bindings []FieldBinding, isNet bool) string {
	name := flatName(dottedName(m))
	parent := "IProtoMessage"
	if isNet {
		parent = "INetworkMessage"
	}
	w := textbuf.New()
	w.Line("public interface I%s : %s", name, parent)
	w.Line("{")
	w.Push()
	for _, b := range bindings {
		if b.Repeated || b.Kind == KindMessage {
			w.Line("%s %s { get; }", surfaceType(b), b.Ident)
		} else {
			w.Line("%s %s { get; set; }", surfaceType(b), b.Ident)
		}
	}
	w.Pop()
	w.Line("}")
	return strings.TrimRight(w.String(), "\n")
}

func renderImpl(m *desc.MessageDescriptor, bindings []FieldBinding, wire int32, isNet bool) string {
	name := flatName(dottedName(m))
	w := textbuf.New()
	w.Line("public sealed class %s : ProtoMessage, I%s", name, name)
	w.Line("{")
	w.Push()
	w.Line("public %s(ProtoHandle handle) : base(handle) { }", name)
	if isNet {
		w.Blank()
		w.Line("public const int WireId = %d;", wire)
	}
	for _, b := range bindings {
		w.Blank()
		renderAccessor(w, b)
	}
	w.Pop()
	w.Line("}")
	return strings.TrimRight(w.String(), "\n")
}

// surfaceType is the type an accessor exposes, wrapping repeated
// fields in a read-only collection view of their element kind.
func surfaceType(b FieldBinding) string {
	if b.Repeated {
		return "RepeatedView<" + b.CSType + ">"
	}
	return b.CSType
}

func renderAccessor(w *textbuf.Writer, b FieldBinding) {
	field := "_" + lowerFirst(b.Ident)
	switch {
	case b.Repeated && b.Kind == KindMessage:
		w.Line("public RepeatedView<%s> %s => Handle.RepeatedMessage<%s>(%q);", b.CSType, b.Ident, b.CSType, b.Key)
	case b.Repeated:
		w.Line("public RepeatedView<%s> %s => Handle.Repeated<%s>(%q);", b.CSType, b.Ident, b.CSType, b.Key)
	case b.Kind == KindEnum:
		w.Line("public %s %s", b.CSType, b.Ident)
		w.Line("{")
		w.Push()
		w.Line("get => (%s)Handle.GetInt32(%q);", b.CSType, b.Key)
		w.Line("set => Handle.SetInt32(%q, (int)value);", b.Key)
		w.Pop()
		w.Line("}")
	case b.Kind == KindScalar:
		w.Line("public %s %s", b.CSType, b.Ident)
		w.Line("{")
		w.Push()
		w.Line("get => Handle.Get%s(%q);", b.Accessor, b.Key)
		w.Line("set => Handle.Set%s(%q, value);", b.Accessor, b.Key)
		w.Pop()
		w.Line("}")
	case b.Kind == KindValueType:
		w.Line("public %s %s", b.CSType, b.Ident)
		w.Line("{")
		w.Push()
		w.Line("get => Handle.Get%s(%q);", b.CSType, b.Key)
		w.Line("set => Handle.Set%s(%q, value);", b.CSType, b.Key)
		w.Pop()
		w.Line("}")
	default:
		// nested message, materialized from the parent's storage on
		// first access
		w.Line("private %s? %s;", b.CSType, field)
		w.Line("public %s %s => %s ??= new %s(Handle.Nested(%q));", b.CSType, b.Ident, field, b.CSType, b.Key)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
