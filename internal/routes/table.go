// Package routes owns the localized URL surface: the static slug table,
// the bidirectional slug resolver, the typed translation catalog, and the
// sitemap builder. Everything here is immutable after construction and
// safe for concurrent use.
package routes

import "strings"

// Languages lists the supported language codes in resolution order.
// The flattened reverse index is populated in this order, so when two
// languages reuse the same literal slug for different keys, the earlier
// language wins. Keeping en first makes that tie-break deterministic.
var Languages = []string{"en", "es", "zh", "ru", "ar", "de", "fr", "pt", "ja", "hi"}

const DefaultLanguage = "en"

// Canonical page/category keys. Stable across languages; these are the
// internal routing identities.
const (
	KeyInvestments = "investments"
	KeyHotels      = "hotels"
	KeyAgencies    = "agencies"
	KeySearch      = "search"
	KeySell        = "sell"
	KeyBlog        = "blog"
	KeyContact     = "contact"
)

// Keys in sitemap order.
var Keys = []string{KeyInvestments, KeyHotels, KeyAgencies, KeySearch, KeySell, KeyBlog, KeyContact}

// defaultSlugs is the per-language slug configuration. Non-latin languages
// use romanized slugs (the sites serve latin URL segments everywhere).
var defaultSlugs = map[string]map[string]string{
	"en": {
		KeyInvestments: "investments",
		KeyHotels:      "hotels",
		KeyAgencies:    "agencies",
		KeySearch:      "search",
		KeySell:        "sell",
		KeyBlog:        "blog",
		KeyContact:     "contact",
	},
	"es": {
		KeyInvestments: "inversiones",
		KeyHotels:      "hoteles",
		KeyAgencies:    "agencias",
		KeySearch:      "buscar",
		KeySell:        "vender",
		KeyBlog:        "blog",
		KeyContact:     "contacto",
	},
	"zh": {
		KeyInvestments: "touzi",
		KeyHotels:      "jiudian",
		KeyAgencies:    "zhongjie",
		KeySearch:      "sousuo",
		KeySell:        "chushou",
		KeyBlog:        "boke",
		KeyContact:     "lianxi",
	},
	"ru": {
		KeyInvestments: "investicii",
		KeyHotels:      "oteli",
		KeyAgencies:    "agentstva",
		KeySearch:      "poisk",
		KeySell:        "prodat",
		KeyBlog:        "blog",
		KeyContact:     "kontakty",
	},
	"ar": {
		KeyInvestments: "istithmarat",
		KeyHotels:      "fanadiq",
		KeyAgencies:    "wakalat",
		KeySearch:      "bahth",
		KeySell:        "bay",
		KeyBlog:        "mudawana",
		KeyContact:     "ittisal",
	},
	"de": {
		KeyInvestments: "investitionen",
		KeyHotels:      "hotels",
		KeyAgencies:    "agenturen",
		KeySearch:      "suche",
		KeySell:        "verkaufen",
		KeyBlog:        "blog",
		KeyContact:     "kontakt",
	},
	"fr": {
		KeyInvestments: "investissements",
		KeyHotels:      "hotels",
		KeyAgencies:    "agences",
		KeySearch:      "recherche",
		KeySell:        "vendre",
		KeyBlog:        "blog",
		KeyContact:     "contact",
	},
	"pt": {
		KeyInvestments: "investimentos",
		KeyHotels:      "hoteis",
		KeyAgencies:    "agencias",
		KeySearch:      "busca",
		KeySell:        "vender",
		KeyBlog:        "blog",
		KeyContact:     "contato",
	},
	"ja": {
		KeyInvestments: "toshi",
		KeyHotels:      "hoteru",
		KeyAgencies:    "dairiten",
		KeySearch:      "kensaku",
		KeySell:        "baikyaku",
		KeyBlog:        "burogu",
		KeyContact:     "renraku",
	},
	"hi": {
		KeyInvestments: "nivesh",
		KeyHotels:      "hotel",
		KeyAgencies:    "ejensiyan",
		KeySearch:      "khoj",
		KeySell:        "bechna",
		KeyBlog:        "blog",
		KeyContact:     "sampark",
	},
}

// SlugTable maps language -> (key -> slug) plus a flattened reverse index.
// Built once at startup and injected; never mutated afterwards.
type SlugTable struct {
	byLang  map[string]map[string]string
	reverse map[string]string // slug -> key across all languages
}

// NewSlugTable builds a table from per-language entries. The reverse index
// is filled following the Languages order first, then any extra languages
// in the input (sorted insertion is not needed; extra languages beyond the
// fixed set do not occur in practice).
func NewSlugTable(entries map[string]map[string]string) *SlugTable {
	t := &SlugTable{
		byLang:  make(map[string]map[string]string, len(entries)),
		reverse: make(map[string]string),
	}
	for lang, m := range entries {
		cp := make(map[string]string, len(m))
		for k, s := range m {
			cp[k] = normalizeSlug(s)
		}
		t.byLang[lang] = cp
	}
	for _, lang := range Languages {
		m, ok := t.byLang[lang]
		if !ok {
			continue
		}
		// deterministic key order inside one language
		for _, k := range Keys {
			s, ok := m[k]
			if !ok {
				continue
			}
			if _, taken := t.reverse[s]; !taken {
				t.reverse[s] = k
			}
		}
		// keys outside the canonical list still get indexed
		for k, s := range m {
			if _, taken := t.reverse[s]; !taken {
				t.reverse[s] = k
			}
		}
	}
	return t
}

// DefaultSlugTable returns the table for the production route set.
func DefaultSlugTable() *SlugTable { return NewSlugTable(defaultSlugs) }

// Slug returns the slug for (lang, key) without any fallback.
func (t *SlugTable) Slug(lang, key string) (string, bool) {
	m, ok := t.byLang[lang]
	if !ok {
		return "", false
	}
	s, ok := m[key]
	return s, ok
}

// Supported reports whether lang has an entry in the table.
func (t *SlugTable) Supported(lang string) bool {
	_, ok := t.byLang[normalizeLang(lang)]
	return ok
}

func normalizeSlug(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	// accept region-qualified codes like en-US
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	return lang
}
