package app

import (
	"strings"

	"offmarket_estates/internal/domain"
)

// ComputeMatches correlates investor leads to properties by free-text
// location overlap, the only signal both records reliably share. A lead
// matches a property when the normalized location of one side contains the
// other (bidirectional substring containment) for at least one of the
// lead's declared regions. The score is a plain per-region hit count with
// threshold score > 0; output is a set, not a ranked list.
//
// O(|properties| x |leads| x avg string length). Fine for the tens to low
// hundreds of rows the admin screen works with; do not point this at a
// large catalog without indexing by normalized location token first.
//
// Advisory output for a human operator. No write side effects.
func ComputeMatches(properties []domain.Property, leads []domain.Lead) map[int64][]domain.Lead {
	out := make(map[int64][]domain.Lead, len(properties))
	for _, p := range properties {
		loc := normalizeLocation(deref(p.Location))
		if loc == "" {
			// no signal, matches nothing
			continue
		}
		for _, l := range leads {
			if matchScore(loc, l) > 0 {
				out[p.ID] = append(out[p.ID], l)
			}
		}
	}
	return out
}

// matchScore counts region overlaps between a normalized property location
// and a lead. Multiple declared regions are unioned: any one hit counts.
func matchScore(propertyLoc string, l domain.Lead) int {
	score := 0
	for _, region := range leadRegions(l) {
		r := normalizeLocation(region)
		if r == "" {
			continue
		}
		if strings.Contains(propertyLoc, r) || strings.Contains(r, propertyLoc) {
			score++
		}
	}
	return score
}

func leadRegions(l domain.Lead) []string {
	if len(l.TargetRegions) > 0 {
		return l.TargetRegions
	}
	if l.TargetLocation != nil {
		return []string{*l.TargetLocation}
	}
	return nil
}

func normalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
