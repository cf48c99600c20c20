package docs

import (
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	got := strings.Join(Topics(), ",")
	if got != "config,keys,palette,seed,tree" {
		t.Fatalf("unexpected topics: %s", got)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" Palette ")
	if !ok || !strings.Contains(body, "ctrl+k") {
		t.Fatalf("expected palette topic, ok=%v body=%q", ok, body)
	}
	for _, bad := range []string{"", "nope", "../docs", "content/keys"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	if got := Title("keys"); got != "Keyboard shortcuts" {
		t.Fatalf("Title(keys) = %q", got)
	}
	if got := Title("missing"); got != "missing" {
		t.Fatalf("Title(missing) = %q", got)
	}
}
