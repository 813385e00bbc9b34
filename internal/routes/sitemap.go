package routes

import "encoding/xml"

const (
	sitemapXMLNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlXMLNS   = "http://www.w3.org/1999/xhtml"
)

type sitemapAlternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type sitemapURL struct {
	Loc        string             `xml:"loc"`
	Alternates []sitemapAlternate `xml:"xhtml:link"`
}

type sitemap struct {
	XMLName    xml.Name     `xml:"urlset"`
	XMLNS      string       `xml:"xmlns,attr"`
	XHTMLXMLNS string       `xml:"xmlns:xhtml,attr"`
	URLs       []sitemapURL `xml:"url"`
}

// BuildSitemap renders sitemap.xml for the cartesian product of languages
// and canonical routes, each URL annotated with hreflang alternates for
// every other language (plus x-default pointing at en).
func BuildSitemap(siteURL string, r *Resolver) ([]byte, error) {
	sm := sitemap{XMLNS: sitemapXMLNS, XHTMLXMLNS: xhtmlXMLNS}

	// language roots first
	for _, lang := range Languages {
		sm.URLs = append(sm.URLs, sitemapURL{
			Loc:        siteURL + "/" + lang,
			Alternates: rootAlternates(siteURL),
		})
	}

	for _, key := range Keys {
		alts := keyAlternates(siteURL, r, key)
		for _, lang := range Languages {
			sm.URLs = append(sm.URLs, sitemapURL{
				Loc:        siteURL + r.Path(key, lang),
				Alternates: alts,
			})
		}
	}

	out, err := xml.MarshalIndent(sm, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func rootAlternates(siteURL string) []sitemapAlternate {
	alts := make([]sitemapAlternate, 0, len(Languages)+1)
	for _, l := range Languages {
		alts = append(alts, sitemapAlternate{Rel: "alternate", Hreflang: l, Href: siteURL + "/" + l})
	}
	alts = append(alts, sitemapAlternate{Rel: "alternate", Hreflang: "x-default", Href: siteURL + "/" + DefaultLanguage})
	return alts
}

func keyAlternates(siteURL string, r *Resolver, key string) []sitemapAlternate {
	alts := make([]sitemapAlternate, 0, len(Languages)+1)
	for _, l := range Languages {
		alts = append(alts, sitemapAlternate{Rel: "alternate", Hreflang: l, Href: siteURL + r.Path(key, l)})
	}
	alts = append(alts, sitemapAlternate{Rel: "alternate", Hreflang: "x-default", Href: siteURL + r.Path(key, DefaultLanguage)})
	return alts
}
