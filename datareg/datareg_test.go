package datareg

import "testing"

func TestConstantsRoundTrip(t *testing.T) {
	r := New()
	if err := r.LoadDatum(KindConstants, "", "errno", map[string]int64{
		"EPERM": 1,
		"ENOENT": 2,
	}); err != nil {
		t.Fatalf("LoadDatum: %v", err)
	}

	names, err := r.Lookup("", "errno", 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(names) != 1 || names[0] != "EPERM" {
		t.Fatalf("Lookup(1) = %v, want [EPERM]", names)
	}
}

func TestEnumLookupKnownAndUnknown(t *testing.T) {
	r := New()
	err := r.LoadDatum(KindEnums, "pe", "MachineType", map[int64]string{
		0x14c: "I386",
	})
	if err != nil {
		t.Fatalf("LoadDatum: %v", err)
	}
	names, err := r.Lookup("pe", "MachineType", 0x14c)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(names) != 1 || names[0] != "I386" {
		t.Fatalf("Lookup = %v", names)
	}
	if _, err := r.Lookup("pe", "MachineType", 0x999); err != nil {
		t.Fatalf("Lookup of unknown value should not error: %v", err)
	}
	if names, _ := r.Lookup("pe", "MachineType", 0x999); names != nil {
		t.Fatalf("Lookup of unknown value = %v, want nil", names)
	}
}

func TestBitmaskDecompose(t *testing.T) {
	r := New()
	err := r.LoadDatum(KindBitmasks, "", "flags", map[uint]string{
		0: "READ",
		1: "WRITE",
		2: "EXEC",
	})
	if err != nil {
		t.Fatalf("LoadDatum: %v", err)
	}
	names, unknown, err := r.LookupBitmask("", "flags", 0b1011)
	if err != nil {
		t.Fatalf("LookupBitmask: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("names = %v, want 2 entries", names)
	}
	if unknown != 0b1000 {
		t.Fatalf("unknown = %b, want 1000", unknown)
	}
}

func TestLookupMissing(t *testing.T) {
	r := New()
	if _, err := r.Lookup("", "nope", 0); err == nil {
		t.Fatal("expected LookupMissingError")
	}
}

func TestNamespaceDefault(t *testing.T) {
	r := New()
	if err := r.LoadDatum(KindConstants, "", "x", map[string]int64{"A": 1}); err != nil {
		t.Fatalf("LoadDatum: %v", err)
	}
	if _, ok := r.Get(KindConstants, DefaultNamespace, "x"); !ok {
		t.Fatal("expected datum visible under DefaultNamespace")
	}
}

func TestListAndTypes(t *testing.T) {
	r := New()
	if err := r.LoadDatum(KindTypes, "pe", "DosHeader", "placeholder-type-tree"); err != nil {
		t.Fatalf("LoadDatum: %v", err)
	}
	names := r.List(KindTypes, "pe")
	if len(names) != 1 || names[0] != "DosHeader" {
		t.Fatalf("List = %v", names)
	}
	v, ok := r.Get(KindTypes, "pe", "DosHeader")
	if !ok || v != "placeholder-type-tree" {
		t.Fatalf("Get = %v, %v", v, ok)
	}
}
