package partition

import "testing"

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver("")

	first := r.Resolve("a@b.com")
	second := r.Resolve("a@b.com")
	if first != second {
		t.Fatalf("resolve not deterministic: %q vs %q", first, second)
	}
	if first != "notes/a@b.com/" {
		t.Errorf("prefix = %q, want %q", first, "notes/a@b.com/")
	}
}

func TestResolveSanitizesUnsafeRunes(t *testing.T) {
	r := NewResolver("notes/")

	tests := []struct {
		identity string
		want     string
	}{
		{"alice@example.com", "notes/alice@example.com/"},
		{"bob+tag@example.com", "notes/bob_tag@example.com/"},
		{"weird/../user", "notes/weird_.._user/"},
		{"spaces here", "notes/spaces_here/"},
		{"Ünïcode", "notes/_n_code/"},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.identity); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.identity, got, tt.want)
		}
	}
}

func TestResolverNamespaceNormalization(t *testing.T) {
	withSep := NewResolver("mynotes/")
	withoutSep := NewResolver("mynotes")

	if withSep.Resolve("a") != withoutSep.Resolve("a") {
		t.Errorf("namespace normalization differs: %q vs %q",
			withSep.Resolve("a"), withoutSep.Resolve("a"))
	}
	if got := withSep.Resolve("a"); got != "mynotes/a/" {
		t.Errorf("prefix = %q, want %q", got, "mynotes/a/")
	}
}

func TestKey(t *testing.T) {
	r := NewResolver("")

	if got := r.Key("a@b.com", "1700000000000"); got != "notes/a@b.com/1700000000000.json" {
		t.Errorf("key = %q", got)
	}
}
