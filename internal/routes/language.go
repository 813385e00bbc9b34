package routes

import "golang.org/x/text/language"

var (
	supportedTags = buildTags()
	langMatcher   = language.NewMatcher(supportedTags)
)

func buildTags() []language.Tag {
	tags := make([]language.Tag, 0, len(Languages))
	for _, l := range Languages {
		tags = append(tags, language.MustParse(l))
	}
	return tags
}

// NormalizeLanguage maps a raw language parameter to a supported code.
// Region tags are stripped (es-MX -> es); unsupported values come back
// as ("", false) so the caller can pick its own fallback.
func NormalizeLanguage(raw string) (string, bool) {
	l := normalizeLang(raw)
	for _, s := range Languages {
		if s == l {
			return l, true
		}
	}
	return "", false
}

// MatchAcceptLanguage picks the best supported language for an
// Accept-Language header. Empty or unparseable headers yield en.
func MatchAcceptLanguage(header string) string {
	if header == "" {
		return DefaultLanguage
	}
	prefs, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(prefs) == 0 {
		return DefaultLanguage
	}
	_, idx, conf := langMatcher.Match(prefs...)
	if conf == language.No {
		return DefaultLanguage
	}
	return Languages[idx]
}
