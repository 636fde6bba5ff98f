package blinfo

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeAddon(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addon.py")
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFullDeclaration(t *testing.T) {
	path := writeAddon(t, `
import bpy

bl_info = {
    "name": "Magic Tool",
    "author": "A. Artist",
    "version": (1, 4, 0),
    "blender": (2, 80, 0),
    "location": "View3D > Tools",
    "description": "Does magic things",
    "wiki_url": "http://example.com/wiki",
    "category": "Object",
    "warning": "",
    "experimental": False,
}

def register():
    pass
`)

	info := Parse(path, discardLogger())
	if info == nil {
		t.Fatal("expected a declaration, got nil")
	}

	if got := info["name"]; got != "Magic Tool" {
		t.Errorf("name = %v, want %q", got, "Magic Tool")
	}
	wantVersion := []interface{}{int64(1), int64(4), int64(0)}
	if !reflect.DeepEqual(info["version"], wantVersion) {
		t.Errorf("version = %#v, want %#v", info["version"], wantVersion)
	}
	if got := info["experimental"]; got != false {
		t.Errorf("experimental = %v, want false", got)
	}
	if len(info) != 10 {
		t.Errorf("expected 10 keys, got %d: %v", len(info), info)
	}
}

func TestParseNoDeclaration(t *testing.T) {
	path := writeAddon(t, "import bpy\n\ndef register():\n    pass\n")
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil, got %v", info)
	}
}

func TestParseSyntaxError(t *testing.T) {
	path := writeAddon(t, "def broken(:\n")
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil for unparseable source, got %v", info)
	}
}

func TestParseNonTextSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addon.py")
	os.WriteFile(path, []byte{0x80, 0xff, 0xfe, 0x00, 0x01}, 0644)
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil for binary content, got %v", info)
	}
}

func TestParseMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.py")
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil for a missing file, got %v", info)
	}
}

func TestParseRejectsNonLiteralValue(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"function call", `bl_info = dict(name="x")`},
		{"name reference", "meta = {}\nbl_info = meta\n"},
		{"call inside dict", `bl_info = {"name": open("/etc/passwd").read()}`},
		{"arithmetic on names", `bl_info = {"name": a + b}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAddon(t, tt.source)
			if info := Parse(path, discardLogger()); info != nil {
				t.Errorf("expected nil, got %v", info)
			}
		})
	}
}

func TestParseRejectsNonDictValue(t *testing.T) {
	path := writeAddon(t, `bl_info = ["not", "a", "dict"]`)
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil for a non-dict bl_info, got %v", info)
	}
}

func TestParseIgnoresNestedDeclaration(t *testing.T) {
	path := writeAddon(t, `
def register():
    bl_info = {"name": "nested"}
`)
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil for function-local bl_info, got %v", info)
	}
}

func TestParseIgnoresMultiTargetAssignment(t *testing.T) {
	path := writeAddon(t, `bl_info = other = {"name": "x"}`)
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil for multi-target assignment, got %v", info)
	}
}

func TestParseFirstDeclarationWins(t *testing.T) {
	path := writeAddon(t, `
bl_info = {"name": "first", "blender": (2, 80, 0)}
bl_info = {"name": "second", "blender": (2, 80, 0)}
`)
	info := Parse(path, discardLogger())
	if info == nil {
		t.Fatal("expected a declaration")
	}
	if info["name"] != "first" {
		t.Errorf("name = %v, want %q", info["name"], "first")
	}
}

func TestParseBytesValues(t *testing.T) {
	path := writeAddon(t, `
bl_info = {
    "name": "Bytes",
    "blender": (2, 80, 0),
    "blob": b"plain text",
}
`)
	info := Parse(path, discardLogger())
	if info == nil {
		t.Fatal("expected a declaration")
	}
	if got := info["blob"]; got != "plain text" {
		t.Errorf("blob = %v, want %q", got, "plain text")
	}

	// Bytes that are not valid text cannot be carried into the JSON index.
	path = writeAddon(t, `bl_info = {"name": "Bad", "blob": b"\xff\xfe"}`)
	if info := Parse(path, discardLogger()); info != nil {
		t.Errorf("expected nil for non-text bytes value, got %v", info)
	}
}

func TestParseNegativeAndNoneValues(t *testing.T) {
	path := writeAddon(t, `
bl_info = {
    "name": "edge",
    "offset": -3,
    "scale": -1.5,
    "tracker_url": None,
    "nested": {"flags": [True, False]},
}
`)
	info := Parse(path, discardLogger())
	if info == nil {
		t.Fatal("expected a declaration")
	}
	if got := info["offset"]; got != int64(-3) {
		t.Errorf("offset = %v (%T), want int64(-3)", got, got)
	}
	if got := info["scale"]; got != -1.5 {
		t.Errorf("scale = %v, want -1.5", got)
	}
	if got, ok := info["tracker_url"]; !ok || got != nil {
		t.Errorf("tracker_url = %v, want nil present", got)
	}
	nested, ok := info["nested"].(map[string]interface{})
	if !ok {
		t.Fatalf("nested = %#v, want a map", info["nested"])
	}
	wantFlags := []interface{}{true, false}
	if !reflect.DeepEqual(nested["flags"], wantFlags) {
		t.Errorf("nested flags = %#v, want %#v", nested["flags"], wantFlags)
	}
}
