package profile

import (
	"testing"

	"github.com/AnyUserName/imgconv/internal/encoder"
)

func TestGet_Known(t *testing.T) {
	p := Get("web")
	if p.Format != encoder.JPEG || p.Quality != 82 {
		t.Errorf("web: got %s q=%d", p.Format, p.Quality)
	}
}

func TestGet_FallbackKeepsName(t *testing.T) {
	p := Get("does-not-exist")
	if p.Name != "does-not-exist" {
		t.Errorf("name: got %q", p.Name)
	}
	if p.Format != encoder.JPEG || p.Quality != 100 {
		t.Errorf("fallback: got %s q=%d", p.Format, p.Quality)
	}
	if _, ok := Lookup("does-not-exist"); ok {
		t.Error("Lookup reported unknown profile as built-in")
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	p := Get("favicon")
	p.IconSizes[0] = 999
	if Get("favicon").IconSizes[0] != 16 {
		t.Error("mutating a returned profile changed the table")
	}
}

func TestNames_SortedAndValid(t *testing.T) {
	names := Names()
	if len(names) != len(profiles) {
		t.Fatalf("names: got %d, want %d", len(names), len(profiles))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, n := range names {
		p := Get(n)
		if p.Quality < 1 || p.Quality > 100 {
			t.Errorf("%s: quality %d", n, p.Quality)
		}
		if err := encoder.ValidateIconSizes(p.IconSizes); err != nil {
			t.Errorf("%s: %v", n, err)
		}
	}
}

func TestForFormat(t *testing.T) {
	p, ok := ForFormat(encoder.ICO)
	if !ok || p.Name != "favicon" {
		t.Errorf("ico: got %q ok=%v", p.Name, ok)
	}
	if _, ok := ForFormat("webp"); ok {
		t.Error("webp should have no profile")
	}
}
