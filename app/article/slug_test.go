package article

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		title    string
		expected string
	}{
		{"Writing Middleware in Go", "writing-middleware-in-go"},
		{"Déjà Vu: Caching, Again", "deja-vu-caching-again"},
		{"  Leading & Trailing!  ", "leading-trailing"},
		{"100 Go Mistakes", "100-go-mistakes"},
		{"___", ""},
		{"Go 1.24 — What's New?", "go-1-24-what-s-new"},
	}

	for _, c := range cases {
		if got := Slugify(c.title); got != c.expected {
			t.Errorf("Slugify(%q) = %q, expected %q", c.title, got, c.expected)
		}
	}
}
