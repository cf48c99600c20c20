package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ID       string   `json:"id"`
	ParentID *string  `json:"parentId"`
	Tags     []string `json:"tags"`
	Count    int      `json:"count"`
	Ratio    float64  `json:"ratio"`
	Fav      bool     `json:"isFavorite"`
}

func TestWriteEDN_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	v := map[string]any{"data": sample{ID: "page-1", Tags: []string{"a", "b"}, Count: 3, Ratio: 0.5, Fav: true}}
	if err := Write(&buf, v, "edn", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{:data {:count 3 :id "page-1" :isFavorite true :parentId nil :ratio 0.5 :tags ["a" "b"]}}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("edn mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestWriteEDN_PrettyAndEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"xs": []int{}, "m": map[string]any{}, "n": []int{1}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :m {}\n  :n [\n    1\n  ]\n  :xs []\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("pretty edn mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestKeyword(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"spaceId":   "spaceId",
		"two words": "two-words",
		"a/b":       "a-b",
		"":          "_",
	}
	for in, want := range cases {
		if got := keyword(in); got != want {
			t.Fatalf("keyword(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": []string{"x"}}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "{\"data\":[\"x\"]}\n" {
		t.Fatalf("unexpected json: %q", got)
	}

	buf.Reset()
	if err := Write(&buf, map[string]any{"a": 1}, "JSON", true); err != nil {
		t.Fatalf("Write pretty: %v", err)
	}
	if got := buf.String(); got != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("unexpected pretty json: %q", got)
	}
}

func TestWriteYAML_UsesJSONNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pid := "page-2"
	if err := Write(&buf, sample{ID: "page-3", ParentID: &pid}, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"id: page-3\n", "parentId: page-2\n", "isFavorite: false\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Write(&bytes.Buffer{}, 1, "xml", false)
	if err == nil || !strings.Contains(err.Error(), "unknown format: xml") {
		t.Fatalf("expected unknown format error, got %v", err)
	}
}
