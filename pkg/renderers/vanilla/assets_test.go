package vanilla

import (
	"io/fs"
	"strings"
	"testing"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(data), "flex-shrink: 0") {
		t.Fatalf("stylesheet must keep section bodies from shrinking")
	}
}

func TestDomID(t *testing.T) {
	cases := map[string][]string{
		"fs-a-b":      {"fs", "a", "b"},
		"fs-with-dot": {"fs", "with.dot"},
		"fs":          {"fs", "", "  "},
	}
	for want, parts := range cases {
		if got := domID(parts...); got != want {
			t.Fatalf("domID(%q) = %q, want %q", parts, got, want)
		}
	}
}

func TestIconName(t *testing.T) {
	if got := iconName(" TH-Large "); got != "th-large" {
		t.Fatalf("icon mismatch: %q", got)
	}
	if got := iconName(`x" onclick="y`); got != "" {
		t.Fatalf("unsafe icon names must be dropped: %q", got)
	}
}

func TestIDToken(t *testing.T) {
	cases := map[string]string{
		"array1": "array1",
		"a.b":    "a_2eb",
		"a-b":    "a_2db",
		"a_b":    "a_5fb",
		"é":      "_c3_a9",
	}
	for in, want := range cases {
		if got := idToken(in); got != want {
			t.Fatalf("idToken(%q) = %q, want %q", in, got, want)
		}
	}
	if got := subsectionDOMID("p", "s", "u"); got != "p-s-s-u-u" {
		t.Fatalf("subsection dom id mismatch: %q", got)
	}
}
