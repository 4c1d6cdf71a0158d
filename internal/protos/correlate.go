package protos

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jhump/protoreflect/desc"
)

// Family is one network-message correlation rule: values of the named
// enum, stripped of Prefix (and for two families trimmed of a trailing
// suffix), identify messages containing both Contains and the trimmed
// value name.
type Family struct {
	Enum     string
	Prefix   string
	Contains string
	Trim     string
}

// families is the fixed correlation table for the eight net-message
// enum families.
var families = []Family{
	{Enum: "NET_Messages", Prefix: "net_", Contains: "CNETMsg"},
	{Enum: "SVC_Messages", Prefix: "svc_", Contains: "CSVCMsg"},
	{Enum: "EBaseUserMessages", Prefix: "UM_", Contains: "CUserMessage"},
	{Enum: "EBaseEntityMessages", Prefix: "EM_", Contains: "CEntityMessage"},
	{Enum: "EBaseGameEvents", Prefix: "GE_", Contains: "CMsg"},
	{Enum: "ECstrike15UserMessages", Prefix: "CS_UM_", Contains: "CCSUsrMsg"},
	{Enum: "ECsgoGameEvents", Prefix: "GE_", Contains: "CMsgTE", Trim: "Id"},
	{Enum: "ETEProtobufIds", Prefix: "TE_", Contains: "CMsgTE", Trim: "Id"},
}

func familyFor(enumName string) (Family, bool) {
	for _, fam := range families {
		if fam.Enum == enumName {
			return fam, true
		}
	}
	return Family{}, false
}

// Correlate assigns integer wire identifiers to messages by matching
// recognized enum values against message names. The first matching
// unhandled message wins and is marked handled. Values with no match
// are reported as warnings; messages never matched emit as ordinary
// messages with no wire identifier.
func Correlate(files []*desc.FileDescriptor) (map[string]int32, []string) {
	ids := make(map[string]int32)
	handled := make(map[string]bool)
	var warnings []string

	var msgs []*desc.MessageDescriptor
	for _, f := range files {
		msgs = append(msgs, f.GetMessageTypes()...)
	}

	for _, f := range files {
		for _, en := range f.GetEnumTypes() {
			fam, ok := familyFor(en.GetName())
			if !ok {
				continue
			}
			for _, v := range en.GetValues() {
				stripped, ok := strings.CutPrefix(v.GetName(), fam.Prefix)
				if !ok {
					continue
				}
				if fam.Trim != "" {
					stripped = strings.TrimSuffix(stripped, fam.Trim)
				}
				match := firstMatch(msgs, handled, fam.Contains, stripped)
				if match == nil {
					w := fmt.Sprintf("no message correlates with %s.%s (wanted %q within a %q message)",
						en.GetName(), v.GetName(), stripped, fam.Contains)
					slog.Warn("net-message correlation miss",
						"enum", en.GetName(), "value", v.GetName(), "name", stripped)
					warnings = append(warnings, w)
					continue
				}
				handled[match.GetName()] = true
				ids[match.GetName()] = v.GetNumber()
			}
		}
	}
	return ids, warnings
}

func firstMatch(msgs []*desc.MessageDescriptor, handled map[string]bool, contains, name string) *desc.MessageDescriptor {
	for _, m := range msgs {
		n := m.GetName()
		if handled[n] {
			continue
		}
		if strings.Contains(n, contains) && strings.Contains(n, name) {
			return m
		}
	}
	return nil
}
