package routes

// Resolver translates between language-neutral page keys and the localized
// URL segments users see. Every operation is total: unknown slugs and
// unknown languages degrade to a usable default, never an error. Broken
// localization must land on the localized home page, not a 404.
type Resolver struct {
	table *SlugTable
}

func NewResolver(t *SlugTable) *Resolver { return &Resolver{table: t} }

// ResolveKey maps a localized slug back to its canonical key.
// Priority order:
//  1. flattened global index (all languages; the hint is ignored here,
//     a slug is treated as globally unique once flattened)
//  2. exact match against the en table
//  3. exact match against the hint language table (unknown hint -> en)
func (r *Resolver) ResolveKey(slug, langHint string) (string, bool) {
	s := normalizeSlug(slug)
	if s == "" {
		return "", false
	}
	if key, ok := r.table.reverse[s]; ok {
		return key, true
	}
	if key, ok := matchValue(r.table.byLang[DefaultLanguage], s); ok {
		return key, true
	}
	hint := normalizeLang(langHint)
	if _, ok := r.table.byLang[hint]; !ok {
		hint = DefaultLanguage
	}
	return matchValue(r.table.byLang[hint], s)
}

// ResolveSlug maps a canonical key to its slug in lang. Falls back to the
// en slug, then to the key itself, so the result is always navigable.
func (r *Resolver) ResolveSlug(key, lang string) string {
	if s, ok := r.table.Slug(normalizeLang(lang), key); ok {
		return s
	}
	if s, ok := r.table.Slug(DefaultLanguage, key); ok {
		return s
	}
	return key
}

// SwitchLanguage rebuilds the current page's path in the target language.
// When the current slug does not resolve (dynamic or non-catalog pages),
// it returns the bare target-language root instead of guessing.
func (r *Resolver) SwitchLanguage(currentSlug, currentLang, targetLang string) string {
	target := normalizeLang(targetLang)
	if !r.table.Supported(target) {
		target = DefaultLanguage
	}
	key, ok := r.ResolveKey(currentSlug, currentLang)
	if !ok {
		return "/" + target
	}
	return "/" + target + "/" + r.ResolveSlug(key, target)
}

// Path returns the public path for (key, lang): /{lang}/{slug}.
func (r *Resolver) Path(key, lang string) string {
	l := normalizeLang(lang)
	if !r.table.Supported(l) {
		l = DefaultLanguage
	}
	return "/" + l + "/" + r.ResolveSlug(key, l)
}

func matchValue(m map[string]string, slug string) (string, bool) {
	for _, k := range Keys {
		if m[k] == slug {
			return k, true
		}
	}
	for k, s := range m {
		if s == slug {
			return k, true
		}
	}
	return "", false
}
