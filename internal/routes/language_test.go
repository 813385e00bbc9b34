package routes

import "testing"

func TestMatchAcceptLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"es", "es"},
		{"es-MX,es;q=0.9,en;q=0.8", "es"},
		{"fr-FR,fr;q=0.9", "fr"},
		{"zh-TW", "zh"},
		{"pt-BR", "pt"},
		{"da,sv;q=0.9", "en"}, // unsupported languages fall back
		{"garbage;;;", "en"},
		{"ar-EG,ar;q=0.8,en;q=0.5", "ar"},
	}
	for _, tc := range cases {
		if got := MatchAcceptLanguage(tc.header); got != tc.want {
			t.Errorf("MatchAcceptLanguage(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"es", "es", true},
		{"ES", "es", true},
		{"es-MX", "es", true},
		{" fr ", "fr", true},
		{"zz", "", false},
		{"", "", false},
		{"es_MX", "", false}, // underscore form is not a language tag here
	}
	for _, tc := range cases {
		got, ok := NormalizeLanguage(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NormalizeLanguage(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
