package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const yamlSeed = `
spaces:
  - id: space-a
    name: Ops
    description: Runbooks
    icon: "🛠"
    color: "#111111"
    createdAt: 2024-05-01T00:00:00Z
pages:
  - id: page-a
    spaceId: space-a
    title: On-call
    content: "<p>Pager rotation</p>"
    createdAt: 2024-05-02T00:00:00Z
    updatedAt: 2024-05-03T00:00:00Z
    isFavorite: true
  - id: page-b
    spaceId: space-a
    parentId: page-a
    title: Escalation
    createdAt: 2024-05-04T00:00:00Z
`

const tomlSeed = `
[[spaces]]
id = "space-t"
name = "Toml"
createdAt = 2024-06-01T00:00:00Z

[[pages]]
id = "page-t"
spaceId = "space-t"
title = "From TOML"
createdAt = 2024-06-02T00:00:00Z
`

func TestParseSeed_YAML(t *testing.T) {
	t.Parallel()

	sd, err := ParseSeed([]byte(yamlSeed), ".yaml")
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	if len(sd.Spaces) != 1 || len(sd.Pages) != 2 {
		t.Fatalf("unexpected counts: %d spaces, %d pages", len(sd.Spaces), len(sd.Pages))
	}
	b := sd.Pages[1]
	if b.Parent() != "page-a" {
		t.Fatalf("expected parent page-a, got %q", b.Parent())
	}
	if b.Emoji != DefaultPageEmoji {
		t.Fatalf("expected default emoji filled in, got %q", b.Emoji)
	}
	if !b.UpdatedAt.Equal(b.CreatedAt) {
		t.Fatalf("expected updatedAt defaulted to createdAt")
	}
	if !sd.Pages[0].IsFavorite || sd.Pages[0].ParentID != nil {
		t.Fatalf("page-a: %#v", sd.Pages[0])
	}
	if !sd.Spaces[0].CreatedAt.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("space createdAt: %v", sd.Spaces[0].CreatedAt)
	}

	s := New(sd.Option())
	if got := pageIDs(s.GetChildPages("page-a")); len(got) != 1 || got[0] != "page-b" {
		t.Fatalf("children: %v", got)
	}
	if s.UI().SelectedSpace() != "space-a" {
		t.Fatalf("expected first seeded space selected")
	}
}

func TestParseSeed_TOML(t *testing.T) {
	t.Parallel()

	sd, err := ParseSeed([]byte(tomlSeed), "toml")
	if err != nil {
		t.Fatalf("ParseSeed: %v", err)
	}
	if len(sd.Pages) != 1 || sd.Pages[0].Title != "From TOML" || sd.Pages[0].ParentID != nil {
		t.Fatalf("unexpected pages: %#v", sd.Pages)
	}
}

func TestParseSeed_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	dup := `{"spaces":[{"id":"s"}],"pages":[{"id":"p","spaceId":"s"},{"id":"p","spaceId":"s"}]}`
	_, err := ParseSeed([]byte(dup), ".json")
	if err == nil || !strings.Contains(err.Error(), "duplicate page id: p") {
		t.Fatalf("expected duplicate page error, got %v", err)
	}

	self := `{"spaces":[],"pages":[{"id":"p","spaceId":"s","parentId":"p"}]}`
	if _, err := ParseSeed([]byte(self), ".json"); err == nil {
		t.Fatalf("expected self-parent error")
	}

	if _, err := ParseSeed([]byte(`{}`), ".ini"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestLoadSeedFile_JSONRoundTripOfDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(`{"spaces":[{"id":"space-1","name":"Only"}],"pages":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	sd, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}
	if len(sd.Spaces) != 1 || sd.Spaces[0].Name != "Only" {
		t.Fatalf("unexpected seed: %#v", sd)
	}

	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestWriteSeedFile_RoundTripsEveryFormat(t *testing.T) {
	t.Parallel()

	def := DefaultSeed()
	for _, ext := range []string{".yaml", ".toml", ".json"} {
		path := filepath.Join(t.TempDir(), "wiki"+ext)
		if err := WriteSeedFile(path, def, false); err != nil {
			t.Fatalf("%s: write: %v", ext, err)
		}
		got, err := LoadSeedFile(path)
		if err != nil {
			t.Fatalf("%s: load: %v", ext, err)
		}
		if len(got.Spaces) != len(def.Spaces) || len(got.Pages) != len(def.Pages) {
			t.Fatalf("%s: got %d spaces / %d pages", ext, len(got.Spaces), len(got.Pages))
		}
		for i := range def.Pages {
			want, have := def.Pages[i], got.Pages[i]
			if have.ID != want.ID || have.Parent() != want.Parent() || have.Content != want.Content {
				t.Fatalf("%s: page %d differs: %#v", ext, i, have)
			}
			if !have.UpdatedAt.Equal(want.UpdatedAt) {
				t.Fatalf("%s: page %s updatedAt %v != %v", ext, want.ID, have.UpdatedAt, want.UpdatedAt)
			}
		}
	}
}

func TestWriteSeedFile_RefusesOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wiki.yaml")
	if err := os.WriteFile(path, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := WriteSeedFile(path, DefaultSeed(), false)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected refusal; got %v", err)
	}
	if b, _ := os.ReadFile(path); string(b) != "keep" {
		t.Fatalf("file was modified")
	}
	if err := WriteSeedFile(path, DefaultSeed(), true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := EncodeSeed(DefaultSeed(), ".xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
