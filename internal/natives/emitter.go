package natives

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

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

// csKeywords need an @ prefix when used as parameter names.
var csKeywords = map[string]bool{
	"event": true, "string": true, "object": true, "params": true,
	"base": true, "class": true, "value": true, "default": true,
	"ref": true, "out": true, "in": true, "lock": true,
}

func paramName(name string) string {
	if csKeywords[name] {
		return "@" + name
	}
	return name
}

// method carries one rendered trampoline for the templates.
type method struct {
	Decl    string // interface declaration, no body
	Body    string // implementation member, preformatted
	Comment string
}

type fileData struct {
	Version   string
	Namespace string
	TypeName  string
	Methods   []method
}

// Emit writes the paired contract and implementation for one native
// schema file under outDir.
func Emit(f *File, outDir string) (*Result, error) {
	res := &Result{}
	if f.Namespace == "" {
		return res, nil
	}
	typeName := typeNameFor(f.Namespace)

	scope := idents.NewScope()
	data := fileData{
		Version:   version.Version,
		Namespace: f.Namespace,
		TypeName:  typeName,
	}
	for i := range f.Functions {
		sig := &f.Functions[i]
		ident := scope.Claim(idents.Exported(sig.Name))
		data.Methods = append(data.Methods, method{
			Decl:    declFor(sig, ident),
			Body:    trampoline(f.Namespace, sig, ident),
			Comment: sig.Comment,
		})
	}

	pairs := []struct{ tmpl, path string }{
		{"natives_interface.cs.tmpl", filepath.Join(outDir, "interfaces", "I"+typeName+".cs")},
		{"natives_impl.cs.tmpl", filepath.Join(outDir, "implementations", typeName+".cs")},
	}
	funcs := template.FuncMap{"indent": indentBlock}
	for _, p := range pairs {
		content, err := templates.Render(p.tmpl, funcs, data)
		if err != nil {
			return nil, err
		}
		if err := writeFile(p.path, content); err != nil {
			return nil, err
		}
		res.Files++
	}
	return res, nil
}

// indentBlock shifts a preformatted member body one level into its
// enclosing type.
func indentBlock(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// typeNameFor derives the generated type name from the dotted
// namespace path: "swiftly.engine" becomes EngineNatives.
func typeNameFor(namespace string) string {
	parts := strings.Split(namespace, ".")
	return idents.Identifier(parts[len(parts)-1]) + "Natives"
}

// declFor renders the managed method signature shared by the contract
// and the implementation.
func declFor(sig *Signature, ident string) string {
	_, ret := idents.NativeMarshal(sig.ReturnType)
	var ps []string
	for _, p := range sig.Params {
		_, cs := idents.NativeMarshal(p.Type)
		ps = append(ps, cs+" "+paramName(p.Name))
	}
	return fmt.Sprintf("%s %s(%s)", ret, ident, strings.Join(ps, ", "))
}

// pointerType builds the unmanaged function-pointer type for a
// signature. Bytes parameters contribute a pointer plus a length;
// variable-length returns append a trailing output-buffer pointer and
// report the required length as int.
func pointerType(sig *Signature) string {
	var parts []string
	for _, p := range sig.Params {
		kind, cs := idents.NativeMarshal(p.Type)
		parts = append(parts, idents.LowLevelType(kind, cs))
		if kind == idents.MarshalBytes {
			parts = append(parts, "int")
		}
	}
	retKind, retCS := idents.NativeMarshal(sig.ReturnType)
	switch retKind {
	case idents.MarshalString, idents.MarshalBytes:
		parts = append(parts, "byte*", "int")
	default:
		parts = append(parts, idents.LowLevelType(retKind, retCS))
	}
	return "delegate* unmanaged[Cdecl]<" + strings.Join(parts, ", ") + ">"
}

// trampoline synthesizes the implementation body for one native call.
// Rented buffers live in a BufferGuard disposed when the method scope
// exits, so every buffer is released exactly once on every control
// path, including both phases of the variable-length return protocol.
func trampoline(namespace string, sig *Signature, ident string) string {
	w := textbuf.New()

	w.Line("public unsafe %s", declFor(sig, ident))
	w.Line("{")
	w.Push()
	if sig.Sync {
		w.Line("ThreadGuard.AssertMainThread(\"%s\");", ident)
	}
	w.Line("var fn = (%s)NativeLoader.Slot(\"%s.%s\");", pointerType(sig), namespace, sig.Name)

	retKind, _ := idents.NativeMarshal(sig.ReturnType)
	needsGuard := retKind == idents.MarshalString || retKind == idents.MarshalBytes
	var args []string
	var rented []string
	for _, p := range sig.Params {
		kind, _ := idents.NativeMarshal(p.Type)
		name := paramName(p.Name)
		switch kind {
		case idents.MarshalString:
			rented = append(rented, fmt.Sprintf("byte* %s0 = guard.RentUtf8(%s);", p.Name, name))
			args = append(args, p.Name+"0")
			needsGuard = true
		case idents.MarshalBytes:
			rented = append(rented, fmt.Sprintf("byte* %s0 = guard.RentBytes(%s);", p.Name, name))
			args = append(args, p.Name+"0", name+".Length")
			needsGuard = true
		case idents.MarshalBool:
			args = append(args, fmt.Sprintf("(byte)(%s ? 1 : 0)", name))
		default:
			args = append(args, name)
		}
	}
	if needsGuard {
		w.Line("using var guard = new BufferGuard();")
	}
	for _, line := range rented {
		w.Line("%s", line)
	}

	argList := strings.Join(args, ", ")
	call := func(extra string) string {
		if argList == "" {
			return "fn(" + extra + ")"
		}
		if extra == "" {
			return "fn(" + argList + ")"
		}
		return "fn(" + argList + ", " + extra + ")"
	}

	switch retKind {
	case idents.MarshalVoid:
		w.Line("%s;", call(""))
	case idents.MarshalBool:
		w.Line("return %s != 0;", call(""))
	case idents.MarshalString, idents.MarshalBytes:
		// two-phase: probe with a null output pointer for the length,
		// rent length + 1, call again, decode from the filled buffer
		w.Line("int length = %s;", call("null"))
		w.Line("byte* buffer = guard.Rent(length + 1);")
		w.Line("%s;", call("buffer"))
		if retKind == idents.MarshalString {
			w.Line("return BufferGuard.DecodeUtf8(buffer, length);")
		} else {
			w.Line("return BufferGuard.CopyBytes(buffer, length);")
		}
	default:
		w.Line("return %s;", call(""))
	}
	w.Pop()
	w.Line("}")
	return w.String()
}
