package codeunit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"linecache/internal/resolve"
)

// sampleGraph builds a module with two functions; helper is shared by both and
// loop references itself.
func sampleGraph() *Unit {
	helper := &Unit{Name: "helper", FirstLine: 10, Lines: []LineStart{{0, 10}, {4, 11}}}
	loop := &Unit{Name: "loop", FirstLine: 5, Lines: []LineStart{{0, 5}, {6, 6}, {12, 7}}}
	loop.Consts = []*Unit{helper, loop}
	mod := &Unit{
		Name:      "<module>",
		FirstLine: 1,
		Lines:     []LineStart{{0, 1}, {2, 5}, {8, 10}, {14, 13}},
		Consts:    []*Unit{loop, helper},
	}
	return mod
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal("prog.py", sampleGraph())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	doc, root, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if doc.Source != "prog.py" || len(doc.Units) != 3 {
		t.Fatalf("doc = %q with %d units", doc.Source, len(doc.Units))
	}
	if root.Name != "<module>" || len(root.Lines) != 4 || root.Lines[3] != (LineStart{14, 13}) {
		t.Fatalf("root = %+v", root)
	}

	loop, helper := root.Consts[0], root.Consts[1]
	if loop.Name != "loop" || helper.Name != "helper" {
		t.Fatalf("consts = %s, %s", loop.Name, helper.Name)
	}
	if loop.Consts[0] != helper {
		t.Errorf("shared unit decoded twice")
	}
	if loop.Consts[1] != loop {
		t.Errorf("cycle not preserved")
	}
}

func TestWalkVisitsOnce(t *testing.T) {
	var names []string
	Walk(sampleGraph(), func(u, _ *Unit) bool {
		names = append(names, u.Name)
		return true
	})
	want := []string{"<module>", "loop", "helper"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestDecodeRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
	}{
		{"nil", nil},
		{"schema", &Document{Schema: SchemaVersion + 1, Units: []UnitRecord{{Name: "m"}}}},
		{"root", &Document{Schema: SchemaVersion, Root: 2, Units: []UnitRecord{{Name: "m"}}}},
		{"const", &Document{Schema: SchemaVersion, Units: []UnitRecord{{Name: "m", Consts: []uint32{5}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.doc); !errors.Is(err, ErrSchema) {
				t.Errorf("Decode error = %v, want ErrSchema", err)
			}
		})
	}
	if _, _, err := Unmarshal([]byte("not msgpack at all")); !errors.Is(err, ErrSchema) {
		t.Errorf("Unmarshal garbage = %v, want ErrSchema", err)
	}
}

func TestArtifactLoader(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.py")
	if err := os.WriteFile(src, []byte("x = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	loader := NewArtifactLoader(resolve.New(nil, "", nil))

	if _, err := loader.Load(src); !errors.Is(err, ErrNoArtifact) {
		t.Fatalf("Load before Store = %v, want ErrNoArtifact", err)
	}

	p, err := loader.Store(src, sampleGraph())
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if want := filepath.Join(dir, resolve.ArtifactDir, "prog.py.v1"+resolve.ArtifactExt); p != want {
		t.Errorf("artifact path = %s, want %s", p, want)
	}
	root, err := loader.Load(src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.Name != "<module>" || len(root.Consts) != 2 {
		t.Errorf("loaded root = %+v", root)
	}
	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("artifact dir has %d entries, temp file left behind?", len(entries))
	}
}

func TestEncodeRejectsNegative(t *testing.T) {
	if _, err := Encode("x", &Unit{Name: "m", Lines: []LineStart{{-1, 1}}}); err == nil {
		t.Errorf("negative offset encoded")
	}
	if _, err := Encode("x", nil); err == nil {
		t.Errorf("nil root encoded")
	}
}
