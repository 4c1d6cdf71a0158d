package natives

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func emitted(t *testing.T, listing string) (string, string) {
	t.Helper()
	outDir := t.TempDir()
	f := Parse(listing)
	res, err := Emit(f, outDir)
	if err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if res.Files != 2 {
		t.Fatalf("Files = %d, want 2", res.Files)
	}

	typeName := typeNameFor(f.Namespace)
	iface, err := os.ReadFile(filepath.Join(outDir, "interfaces", "I"+typeName+".cs"))
	if err != nil {
		t.Fatal(err)
	}
	impl, err := os.ReadFile(filepath.Join(outDir, "implementations", typeName+".cs"))
	if err != nil {
		t.Fatal(err)
	}
	return string(iface), string(impl)
}

func TestEmit_TwoPhaseStringReturn(t *testing.T) {
	iface, impl := emitted(t, "swiftly.engine\nstring GetMapName = void\n")

	if !strings.Contains(iface, "string GetMapName();") {
		t.Errorf("interface missing declaration:\n%s", iface)
	}
	for _, want := range []string{
		"public unsafe string GetMapName()",
		`(delegate* unmanaged[Cdecl]<byte*, int>)NativeLoader.Slot("swiftly.engine.GetMapName")`,
		"using var guard = new BufferGuard();",
		"int length = fn(null);",
		"byte* buffer = guard.Rent(length + 1);",
		"fn(buffer);",
		"return BufferGuard.DecodeUtf8(buffer, length);",
	} {
		if !strings.Contains(impl, want) {
			t.Errorf("implementation missing %q:\n%s", want, impl)
		}
	}
}

func TestEmit_SyncAndMarshaling(t *testing.T) {
	_, impl := emitted(t, "swiftly.engine\nsync bool EmitSound = ptr entity, string sound, bool loop\n")

	for _, want := range []string{
		`ThreadGuard.AssertMainThread("EmitSound");`,
		"delegate* unmanaged[Cdecl]<nint, byte*, byte, byte>",
		"byte* sound0 = guard.RentUtf8(sound);",
		"return fn(entity, sound0, (byte)(loop ? 1 : 0)) != 0;",
	} {
		if !strings.Contains(impl, want) {
			t.Errorf("implementation missing %q:\n%s", want, impl)
		}
	}
	// no two-phase machinery for fixed-size returns
	if strings.Contains(impl, "int length") {
		t.Errorf("unexpected length probe:\n%s", impl)
	}
}

func TestEmit_BytesParam(t *testing.T) {
	_, impl := emitted(t, "swiftly.net\nvoid SendRaw = int slot, bytes payload\n")

	for _, want := range []string{
		"delegate* unmanaged[Cdecl]<int, byte*, int, void>",
		"byte* payload0 = guard.RentBytes(payload);",
		"fn(slot, payload0, payload.Length);",
	} {
		if !strings.Contains(impl, want) {
			t.Errorf("implementation missing %q:\n%s", want, impl)
		}
	}
}

func TestEmit_KeywordParamAndNaming(t *testing.T) {
	iface, impl := emitted(t, "swiftly.events\nvoid Hook = string event\n")

	if !strings.Contains(iface, "void Hook(string @event);") {
		t.Errorf("interface missing escaped parameter:\n%s", iface)
	}
	if !strings.Contains(impl, "guard.RentUtf8(@event)") {
		t.Errorf("implementation missing escaped use:\n%s", impl)
	}
	if !strings.Contains(impl, "public sealed class EventsNatives") && !strings.Contains(impl, "class EventsNatives") {
		t.Errorf("type name not derived from namespace:\n%s", impl)
	}
}
