// Package protos adapts parsed protobuf descriptors into the message,
// enum and network-message bindings the plugin runtime exposes.
// Descriptor syntax parsing is delegated to jhump/protoreflect; this
// package only classifies and correlates its output.
package protos

import (
	"fmt"
	"strings"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
)

// Adapter wraps the descriptor set for the explicitly requested files.
// Transitively imported files stay resolvable for type lookup but are
// never emitted.
type Adapter struct {
	files []*desc.FileDescriptor
	// enums records the dotted name of every emitted enum, consulted
	// by field classification.
	enums map[string]bool
}

// Load parses the named proto files against the given import paths.
func Load(importPaths []string, files []string) (*Adapter, error) {
	p := protoparse.Parser{ImportPaths: importPaths}
	fds, err := p.ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("parse proto descriptors: %w", err)
	}
	return &Adapter{files: fds, enums: make(map[string]bool)}, nil
}

// Files returns the requested file descriptors in request order.
func (a *Adapter) Files() []*desc.FileDescriptor {
	return a.files
}

// denied lists well-known infrastructure and wrapper names excluded
// from output entirely. The value-type wrappers are replaced by
// hand-maintained types at every field site.
var denied = map[string]bool{
	"CMsgVector":                  true,
	"CMsgVector2D":                true,
	"CMsgQAngle":                  true,
	"CMsgRGBA":                    true,
	"CMsgQuaternion":              true,
	"CMsgTransform":               true,
	"CMsgProtoDefHeader":          true,
	"ENetworkDisconnectionReason": true,
}

// Denied reports whether a message or enum name is excluded from
// output.
func Denied(name string) bool {
	return denied[name]
}

// dottedName builds a type's dotted name from the chain of enclosing
// message names, without the package.
func dottedName(d desc.Descriptor) string {
	var parts []string
	for d != nil {
		if _, ok := d.(*desc.FileDescriptor); ok {
			break
		}
		parts = append([]string{d.GetName()}, parts...)
		d = d.GetParent()
	}
	return strings.Join(parts, ".")
}

// flatName renders a dotted name as a single C# type name.
func flatName(dotted string) string {
	return strings.ReplaceAll(dotted, ".", "")
}

// recordEnums walks the file's enums, then every message's enums
// recursively, recording each dotted enum name for the classification
// pass.
func (a *Adapter) recordEnums(f *desc.FileDescriptor) {
	for _, en := range f.GetEnumTypes() {
		if !Denied(en.GetName()) {
			a.enums[en.GetName()] = true
		}
	}
	for _, m := range f.GetMessageTypes() {
		a.recordMessageEnums(m)
	}
}

func (a *Adapter) recordMessageEnums(m *desc.MessageDescriptor) {
	for _, en := range m.GetNestedEnumTypes() {
		if !Denied(en.GetName()) {
			a.enums[dottedName(en)] = true
		}
	}
	for _, nested := range m.GetNestedMessageTypes() {
		a.recordMessageEnums(nested)
	}
}
