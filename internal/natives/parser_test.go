package natives

import (
	"testing"
)

const listing = `// engine surface
swiftly.engine

string GetMapName = void // current map
sync void EmitSound = ptr entity, string sound, float volume
bool IsDedicated = void
int ClientCount = void
bytes ReadUserCmd = int slot
garbage line without separator
float BadParams = int
`

func TestParse(t *testing.T) {
	f := Parse(listing)

	if f.Namespace != "swiftly.engine" {
		t.Fatalf("Namespace = %q", f.Namespace)
	}
	names := make([]string, 0, len(f.Functions))
	for _, fn := range f.Functions {
		names = append(names, fn.Name)
	}
	want := []string{"GetMapName", "EmitSound", "IsDedicated", "ClientCount", "ReadUserCmd"}
	if len(names) != len(want) {
		t.Fatalf("functions = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("functions[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestParse_SignatureDetails(t *testing.T) {
	f := Parse(listing)

	get := func(name string) Signature {
		for _, fn := range f.Functions {
			if fn.Name == name {
				return fn
			}
		}
		t.Fatalf("%s not parsed", name)
		return Signature{}
	}

	mapName := get("GetMapName")
	if len(mapName.Params) != 0 {
		t.Errorf("GetMapName params = %v, want none", mapName.Params)
	}
	if mapName.Comment != "current map" {
		t.Errorf("GetMapName comment = %q", mapName.Comment)
	}
	if mapName.Sync {
		t.Error("GetMapName should not be sync")
	}

	emit := get("EmitSound")
	if !emit.Sync {
		t.Error("EmitSound should be sync")
	}
	if len(emit.Params) != 3 || emit.Params[1].Type != "string" || emit.Params[1].Name != "sound" {
		t.Errorf("EmitSound params = %v", emit.Params)
	}
	if emit.ReturnType != "void" {
		t.Errorf("EmitSound return = %q", emit.ReturnType)
	}
}
