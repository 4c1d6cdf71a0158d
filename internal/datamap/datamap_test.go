package datamap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDump = `{
  "classes": [
    {
      "name": "CBaseEntity",
      "parent": "CEntityInstance",
      "members": [
        {"name": "m_iHealth", "type": "int32", "offset": 836},
        {"name": "m_flElasticity", "type": "float32", "offset": 904},
        {"name": "m_vecAbsOrigin", "type": "vector", "offset": 1288},
        {"name": "m_pCollision", "type": "datamap_embedded", "offset": 600}
      ]
    }
  ]
}`

func TestMemberIdent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"m_iHealth", "Health"},
		{"m_flElasticity", "Elasticity"},
		{"m_vecAbsOrigin", "AbsOrigin"},
		{"m_bIsValid", "IsValid"},
		{"m_lifeState", "LifeState"},
		{"m_MoveType", "MoveType"},
		{"health", "Health"},
	}
	for _, tt := range tests {
		if got := memberIdent(tt.raw); got != tt.want {
			t.Errorf("memberIdent(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestEmit(t *testing.T) {
	d, err := Parse([]byte(sampleDump))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	outDir := t.TempDir()
	res, err := Emit(d, outDir)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if res.Files != 2 {
		t.Errorf("Files = %d, want 2", res.Files)
	}

	impl, err := os.ReadFile(filepath.Join(outDir, "implementations", "CBaseEntity.cs"))
	if err != nil {
		t.Fatalf("implementation not written: %v", err)
	}
	for _, want := range []string{
		"public sealed class CBaseEntity : DatamapObject, ICBaseEntity",
		"public int Health",
		"get => Handle.Read<int>(836);",
		"set => Handle.Write(904, value);",
		"public Vector AbsOrigin",
	} {
		if !strings.Contains(string(impl), want) {
			t.Errorf("implementation missing %q", want)
		}
	}
	// unknown member types are skipped
	if strings.Contains(string(impl), "Collision") {
		t.Errorf("implementation should not bind unknown-typed member")
	}

	iface, err := os.ReadFile(filepath.Join(outDir, "interfaces", "ICBaseEntity.cs"))
	if err != nil {
		t.Fatalf("interface not written: %v", err)
	}
	if !strings.Contains(string(iface), "float Elasticity { get; set; }") {
		t.Errorf("interface missing elasticity member: %s", iface)
	}
}
