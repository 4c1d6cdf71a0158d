package protos

import (
	"log/slog"

	"github.com/jhump/protoreflect/desc"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/swiftly-solution/codegen/internal/idents"
)

// BindingKind tags the strategy a field binds with.
type BindingKind int

const (
	// KindEnum is an integer-backed enum accessor pair.
	KindEnum BindingKind = iota
	// KindScalar is a direct accessor from the base type table.
	KindScalar
	// KindValueType substitutes a hand-maintained value type for a
	// generically generated nested-message wrapper.
	KindValueType
	// KindMessage is a nested-message accessor, lazily materialized
	// from the parent's storage by field name.
	KindMessage
)

// FieldBinding is one classified field, consumed uniformly by the
// emitter.
type FieldBinding struct {
	Ident    string
	Key      string
	Kind     BindingKind
	Repeated bool
	// CSType is the element type the accessor exposes.
	CSType string
	// Accessor is the accessor-kind label from the base type table;
	// empty for value types and nested messages.
	Accessor string
}

// baseTypes maps resolved scalar kinds to their accessor strategy.
var baseTypes = map[descriptorpb.FieldDescriptorProto_Type]struct {
	CS    string
	Label string
}{
	descriptorpb.FieldDescriptorProto_TYPE_BOOL:     {"bool", "Bool"},
	descriptorpb.FieldDescriptorProto_TYPE_INT32:    {"int", "Int32"},
	descriptorpb.FieldDescriptorProto_TYPE_SINT32:   {"int", "Int32"},
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED32: {"int", "Int32"},
	descriptorpb.FieldDescriptorProto_TYPE_UINT32:   {"uint", "UInt32"},
	descriptorpb.FieldDescriptorProto_TYPE_FIXED32:  {"uint", "UInt32"},
	descriptorpb.FieldDescriptorProto_TYPE_INT64:    {"long", "Int64"},
	descriptorpb.FieldDescriptorProto_TYPE_SINT64:   {"long", "Int64"},
	descriptorpb.FieldDescriptorProto_TYPE_SFIXED64: {"long", "Int64"},
	descriptorpb.FieldDescriptorProto_TYPE_UINT64:   {"ulong", "UInt64"},
	descriptorpb.FieldDescriptorProto_TYPE_FIXED64:  {"ulong", "UInt64"},
	descriptorpb.FieldDescriptorProto_TYPE_FLOAT:    {"float", "Float"},
	descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:   {"double", "Double"},
	descriptorpb.FieldDescriptorProto_TYPE_STRING:   {"string", "String"},
	descriptorpb.FieldDescriptorProto_TYPE_BYTES:    {"byte[]", "Bytes"},
}

// valueTypes maps message type names to the hand-maintained value
// types substituted at field sites.
var valueTypes = map[string]string{
	"CMsgVector":   "Vector",
	"CMsgQAngle":   "QAngle",
	"CMsgVector2D": "Vector2D",
	"CMsgRGBA":     "Color",
}

// classifyField picks a binding strategy for one field. Priority:
// recorded enum, base-type table, managed value type, nested message.
func (a *Adapter) classifyField(scope *idents.Scope, f *desc.FieldDescriptor) (FieldBinding, bool) {
	b := FieldBinding{
		Ident:    scope.Claim(idents.Identifier(f.GetName())),
		Key:      f.GetName(),
		Repeated: f.IsRepeated(),
	}

	if en := f.GetEnumType(); en != nil {
		if a.enums[dottedName(en)] {
			b.Kind = KindEnum
			b.CSType = flatName(dottedName(en))
			b.Accessor = "Int32"
			return b, true
		}
		// enums from unemitted imports degrade to their backing int
		b.Kind = KindScalar
		b.CSType = "int"
		b.Accessor = "Int32"
		return b, true
	}

	if base, ok := baseTypes[f.GetType()]; ok {
		b.Kind = KindScalar
		b.CSType = base.CS
		b.Accessor = base.Label
		return b, true
	}

	msg := f.GetMessageType()
	if msg == nil {
		slog.Debug("skipping field with unresolvable type", "field", f.GetFullyQualifiedName())
		return FieldBinding{}, false
	}
	if sub, ok := valueTypes[msg.GetName()]; ok {
		b.Kind = KindValueType
		b.CSType = sub
		return b, true
	}
	b.Kind = KindMessage
	b.CSType = flatName(dottedName(msg))
	return b, true
}
