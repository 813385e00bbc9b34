package app

import (
	"strconv"
	"strings"

	"offmarket_estates/internal/domain"
)

// The two frontends send the same form under diverging field names
// (full_name vs fullName vs name, target_location vs targetLocation vs
// location, ...). Alias registries keep the tolerated spellings in one
// place.

var leadAliases = map[string][]string{
	"full_name":       {"full_name", "fullName", "name"},
	"email":           {"email", "mail", "contact.email"},
	"phone":           {"phone", "phone_number", "phoneNumber", "tel"},
	"target_location": {"target_location", "targetLocation", "location", "zone"},
	"intent":          {"intent", "operation"},
	"message":         {"message", "comments", "notes"},
	"role":            {"role", "profile_type", "profileType"},
	"source":          {"source", "utm_source", "origin"},
	"budget":          {"budget", "max_budget", "maxBudget", "investment_amount"},
}

// MapLead builds a Lead from a loosely-shaped submission payload.
// Non-string values where strings are expected are treated as absent; one
// bad field never fails the mapping.
func MapLead(p map[string]any) domain.Lead {
	l := domain.Lead{
		FullName:       firstNonEmptyAlias(p, leadAliases, "full_name"),
		Email:          firstNonEmptyAlias(p, leadAliases, "email"),
		Phone:          firstNonEmptyAlias(p, leadAliases, "phone"),
		TargetLocation: firstNonEmptyAlias(p, leadAliases, "target_location"),
		Intent:         firstNonEmptyAlias(p, leadAliases, "intent"),
		Message:        firstNonEmptyAlias(p, leadAliases, "message"),
		Source:         firstNonEmptyAlias(p, leadAliases, "source"),
		Budget:         getFloatFlexible(p, leadAliases["budget"]...),
		Status:         domain.StatusNew,
	}

	if role := firstNonEmptyAlias(p, leadAliases, "role"); role != nil {
		switch strings.ToLower(*role) {
		case domain.RoleInvestor, domain.RoleSeller, domain.RoleAgency:
			l.Role = strings.ToLower(*role)
		}
	}
	if l.Role == "" {
		l.Role = domain.RoleInvestor
	}

	switch v := lookupAny(p, "request_access").(type) {
	case bool:
		l.RequestAccess = v
	case string:
		l.RequestAccess = v == "true" || v == "1" || v == "yes"
	}

	// structured search profiles: regions as an array of strings or of
	// {location: ...} objects
	l.TargetRegions = firstSliceStrings(p, "target_regions", "targetRegions", "search_profiles", "regions")

	return l
}

/********** lookup helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) *string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return &s
		}
	}
	return nil
}

// getFloatFlexible: number from several paths (float64/int/string like "250.000,50").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(v)
			if strings.Contains(s, ",") {
				// European thousands/decimal notation
				s = strings.ReplaceAll(s, ".", "")
				s = strings.ReplaceAll(s, ",", ".")
			}
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {location/name} objects.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if t != "" {
					out = append(out, t)
				}
			case map[string]any:
				if s, ok := t["location"].(string); ok && s != "" {
					out = append(out, s)
					continue
				}
				if s, ok := t["name"].(string); ok && s != "" {
					out = append(out, s)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
