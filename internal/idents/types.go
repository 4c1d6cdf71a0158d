package idents

// EventAccessor describes how a game-event field type binds in the
// generated accessor pair.
type EventAccessor struct {
	// CSType is the C# type the accessor exposes.
	CSType string
	// Kind is the accessor-kind label resolved against the runtime
	// event data store (Get<Kind>/Set<Kind>).
	Kind string
}

// eventTypes maps event schema type tokens to accessor strategies.
// Aliased tokens (uint64_t, ehandle_t) are normalized by the parser
// before lookup.
var eventTypes = map[string]EventAccessor{
	"bool":           {"bool", "Bool"},
	"byte":           {"byte", "Byte"},
	"short":          {"short", "Int16"},
	"long":           {"int", "Int32"},
	"float":          {"float", "Float"},
	"uint64":         {"ulong", "UInt64"},
	"string":         {"string", "String"},
	"ehandle":        {"CEntityHandle", "EHandle"},
	"strict_ehandle": {"CEntityHandle", "EHandle"},
}

// EventType resolves an event field type token to its accessor
// strategy. The second result is false for unknown tokens.
func EventType(token string) (EventAccessor, bool) {
	acc, ok := eventTypes[token]
	return acc, ok
}

// playerHandleTypes denote a combined player-controller-and-pawn
// handle; fields of these types expand into four derived bindings.
var playerHandleTypes = map[string]bool{
	"playercontroller_and_pawn":  true,
	"player_controller_and_pawn": true,
}

// IsPlayerHandle reports whether a field binds as an expanded player
// handle, either by its declared type or by its raw name denoting a
// user identifier.
func IsPlayerHandle(typeToken, rawName string) bool {
	return playerHandleTypes[typeToken] || rawName == "userid"
}

// MarshalKind selects the parameter/return marshaling strategy for a
// native type token.
type MarshalKind int

const (
	// MarshalScalar passes the value through unchanged.
	MarshalScalar MarshalKind = iota
	// MarshalBool passes a single 0/1 byte.
	MarshalBool
	// MarshalString passes a pointer to a null-terminated UTF-8 buffer.
	MarshalString
	// MarshalBytes passes a pointer plus an explicit length argument.
	MarshalBytes
	// MarshalVoid is only valid as a return strategy.
	MarshalVoid
)

// nativeScalars maps native scalar type tokens to the C# types they
// pass through as.
var nativeScalars = map[string]string{
	"byte":   "byte",
	"short":  "short",
	"ushort": "ushort",
	"int":    "int",
	"uint":   "uint",
	"long":   "long",
	"int64":  "long",
	"ulong":  "ulong",
	"uint64": "ulong",
	"float":  "float",
	"double": "double",
	"ptr":    "nint",
}

// NativeMarshal resolves a native type token to its marshal strategy
// and the C# surface type.
func NativeMarshal(token string) (MarshalKind, string) {
	switch token {
	case "void":
		return MarshalVoid, "void"
	case "bool":
		return MarshalBool, "bool"
	case "string":
		return MarshalString, "string"
	case "bytes":
		return MarshalBytes, "byte[]"
	}
	if cs, ok := nativeScalars[token]; ok {
		return MarshalScalar, cs
	}
	// unknown tokens pass through as raw pointers
	return MarshalScalar, "nint"
}

// LowLevelType is the type a marshaled value crosses the foreign-call
// boundary as, used to build the unmanaged function-pointer signature.
func LowLevelType(kind MarshalKind, csType string) string {
	switch kind {
	case MarshalBool:
		return "byte"
	case MarshalString, MarshalBytes:
		return "byte*"
	case MarshalVoid:
		return "void"
	default:
		return csType
	}
}
