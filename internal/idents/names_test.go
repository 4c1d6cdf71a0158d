package idents

import "testing"

func TestIdentifier(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		// literal overrides
		{"userid", "UserId"},
		{"hltv", "HLTV"},
		// delimiter split
		{"round_end_reason", "RoundEndReason"},
		{"player_pawn", "PlayerPawn"},
		{"dmg_health", "DmgHealth"},
		// dictionary segmentation for bare lowercase tokens
		{"roundendreason", "RoundEndReason"},
		{"attackerblind", "AttackerBlind"},
		{"teamnum", "TeamNum"},
		{"hitgroup", "HitGroup"},
		// acronym and axis segments upper-case
		{"defindex", "DefIndex"},
		{"item_id", "ItemID"},
		{"pos_x", "PosX"},
		// undictionaried token falls back to one title-cased word
		{"zzqx", "Zzqx"},
		// non-alphanumeric fallback
		{"round.end-reason", "RoundEndReason"},
		// digit prefix
		{"3dskybox", "N3dskybox"},
	}
	for _, tt := range tests {
		if got := Identifier(tt.token); got != tt.want {
			t.Errorf("Identifier(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestIdentifierDelimiterAndDictionaryAgree(t *testing.T) {
	a := Identifier("round_end_reason")
	b := Identifier("roundendreason")
	if a != b {
		t.Errorf("delimiter form %q and segmented form %q diverge", a, b)
	}
}

func TestScopeDisambiguation(t *testing.T) {
	s := NewScope()
	if got := s.Claim("Foo"); got != "Foo" {
		t.Errorf("first claim = %q, want Foo", got)
	}
	if got := s.Claim("Foo"); got != "Foo2" {
		t.Errorf("second claim = %q, want Foo2", got)
	}
	if got := s.Claim("Foo"); got != "Foo3" {
		t.Errorf("third claim = %q, want Foo3", got)
	}
	if got := s.Claim("Bar"); got != "Bar" {
		t.Errorf("fresh name = %q, want Bar", got)
	}
}

func TestScopesAreIndependent(t *testing.T) {
	a := NewScope()
	b := NewScope()
	a.Claim("Foo")
	if got := b.Claim("Foo"); got != "Foo" {
		t.Errorf("scope leaked claims: %q", got)
	}
}

func TestIsPlayerHandle(t *testing.T) {
	if !IsPlayerHandle("playercontroller_and_pawn", "attacker") {
		t.Error("combined handle type not recognized")
	}
	if !IsPlayerHandle("short", "userid") {
		t.Error("userid raw name not recognized")
	}
	if IsPlayerHandle("short", "health") {
		t.Error("plain short misclassified as player handle")
	}
}

func TestNativeMarshal(t *testing.T) {
	tests := []struct {
		token string
		kind  MarshalKind
		cs    string
	}{
		{"int", MarshalScalar, "int"},
		{"bool", MarshalBool, "bool"},
		{"string", MarshalString, "string"},
		{"bytes", MarshalBytes, "byte[]"},
		{"void", MarshalVoid, "void"},
		{"uint64", MarshalScalar, "ulong"},
	}
	for _, tt := range tests {
		kind, cs := NativeMarshal(tt.token)
		if kind != tt.kind || cs != tt.cs {
			t.Errorf("NativeMarshal(%q) = (%v, %q), want (%v, %q)", tt.token, kind, cs, tt.kind, tt.cs)
		}
	}
}

func TestLowLevelType(t *testing.T) {
	if got := LowLevelType(MarshalBool, "bool"); got != "byte" {
		t.Errorf("bool crosses as %q, want byte", got)
	}
	if got := LowLevelType(MarshalString, "string"); got != "byte*" {
		t.Errorf("string crosses as %q, want byte*", got)
	}
	if got := LowLevelType(MarshalScalar, "double"); got != "double" {
		t.Errorf("double crosses as %q", got)
	}
}
