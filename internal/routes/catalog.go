package routes

// The sites' translation payloads historically returned either a string,
// an array, or nothing depending on the key. Callers here pattern-match on
// an explicit kind instead of assuming a shape.

type ValueKind int

const (
	Missing ValueKind = iota
	Text
	List
)

// Value is the tagged result of a catalog lookup.
type Value struct {
	Kind ValueKind
	Text string
	List []string
}

func textValue(s string) Value   { return Value{Kind: Text, Text: s} }
func listValue(l []string) Value { return Value{Kind: List, List: l} }
func missingValue() Value        { return Value{Kind: Missing} }

func (v Value) IsMissing() bool { return v.Kind == Missing }

// Catalog holds localized page copy keyed by "{key}.{field}". Like the
// slug table it is static configuration: built once, read-only after.
type Catalog struct {
	byLang map[string]map[string]Value
}

func NewCatalog(entries map[string]map[string]Value) *Catalog {
	cp := make(map[string]map[string]Value, len(entries))
	for lang, m := range entries {
		inner := make(map[string]Value, len(m))
		for k, v := range m {
			inner[k] = v
		}
		cp[lang] = inner
	}
	return &Catalog{byLang: cp}
}

// Lookup returns the copy for (lang, key), falling back to en, then to
// Missing. Never panics, never returns a half-filled Value.
func (c *Catalog) Lookup(lang, key string) Value {
	l := normalizeLang(lang)
	if m, ok := c.byLang[l]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if l != DefaultLanguage {
		if m, ok := c.byLang[DefaultLanguage]; ok {
			if v, ok := m[key]; ok {
				return v
			}
		}
	}
	return missingValue()
}

// DefaultCatalog carries the marketing copy the public page endpoint
// serves. Only en and es are fully translated today; the remaining
// languages fall back to en per Lookup.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string]map[string]Value{
		"en": {
			"investments.title":      textValue("Off-market investments"),
			"investments.intro":      textValue("Exclusive opportunities before they reach the open market."),
			"investments.highlights": listValue([]string{"Verified sellers", "Direct mandates", "Confidential dossiers"}),
			"hotels.title":           textValue("Hotel assets"),
			"hotels.intro":           textValue("Operating hotels and conversion projects across Spain."),
			"agencies.title":         textValue("Partner agencies"),
			"agencies.intro":         textValue("Collaborate on shared mandates with protected commissions."),
			"search.title":           textValue("Search requests"),
			"sell.title":             textValue("Sell your property"),
			"sell.steps":             listValue([]string{"Tell us about the asset", "Sign the mandate", "Receive qualified offers"}),
			"blog.title":             textValue("Insights"),
			"contact.title":          textValue("Contact us"),
		},
		"es": {
			"investments.title":      textValue("Inversiones off-market"),
			"investments.intro":      textValue("Oportunidades exclusivas antes de salir al mercado."),
			"investments.highlights": listValue([]string{"Vendedores verificados", "Mandatos directos", "Dossiers confidenciales"}),
			"hotels.title":           textValue("Activos hoteleros"),
			"hotels.intro":           textValue("Hoteles en explotación y proyectos de reconversión en España."),
			"agencies.title":         textValue("Agencias colaboradoras"),
			"agencies.intro":         textValue("Colabora en mandatos compartidos con comisiones protegidas."),
			"search.title":           textValue("Solicitudes de búsqueda"),
			"sell.title":             textValue("Vende tu propiedad"),
			"sell.steps":             listValue([]string{"Cuéntanos sobre el activo", "Firma el mandato", "Recibe ofertas cualificadas"}),
			"blog.title":             textValue("Actualidad"),
			"contact.title":          textValue("Contacto"),
		},
	})
}
