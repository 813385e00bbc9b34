package app_test

import (
	"testing"

	"offmarket_estates/internal/app"
	"offmarket_estates/internal/domain"
)

func TestMapLead_AliasSpellings(t *testing.T) {
	payload := map[string]any{
		"fullName":       "Ana Ruiz",
		"email":          "ana@example.com",
		"targetLocation": "Marbella",
		"operation":      "buy",
		"profileType":    "Investor",
		"maxBudget":      "1.500.000,00",
	}

	l := app.MapLead(payload)
	if deref(l.FullName) != "Ana Ruiz" || deref(l.Email) != "ana@example.com" {
		t.Fatalf("identity fields: %+v", l)
	}
	if deref(l.TargetLocation) != "Marbella" || deref(l.Intent) != "buy" {
		t.Fatalf("intent fields: %+v", l)
	}
	if l.Role != domain.RoleInvestor {
		t.Fatalf("role: %s", l.Role)
	}
	if l.Budget == nil || *l.Budget != 1500000 {
		t.Fatalf("budget: %v", l.Budget)
	}
}

func TestMapLead_MalformedFieldsAreAbsent(t *testing.T) {
	payload := map[string]any{
		"full_name": 42,                 // wrong type
		"email":     map[string]any{},   // wrong type
		"budget":    []any{"not money"}, // wrong type
		"phone":     "+34 600 000 000",
	}

	l := app.MapLead(payload)
	if l.FullName != nil || l.Email != nil || l.Budget != nil {
		t.Fatalf("malformed fields should be absent: %+v", l)
	}
	if deref(l.Phone) != "+34 600 000 000" {
		t.Fatalf("good field dropped: %+v", l)
	}
	if l.Status != domain.StatusNew || l.Role != domain.RoleInvestor {
		t.Fatalf("defaults: status=%s role=%s", l.Status, l.Role)
	}
}

func TestMapLead_StructuredRegions(t *testing.T) {
	payload := map[string]any{
		"name": "Multi",
		"search_profiles": []any{
			map[string]any{"location": "Ibiza"},
			"Sotogrande",
		},
	}

	l := app.MapLead(payload)
	if len(l.TargetRegions) != 2 || l.TargetRegions[0] != "Ibiza" || l.TargetRegions[1] != "Sotogrande" {
		t.Fatalf("regions: %v", l.TargetRegions)
	}
}

func TestMapLead_RequestAccessVariants(t *testing.T) {
	if l := app.MapLead(map[string]any{"request_access": true}); !l.RequestAccess {
		t.Fatal("bool true not mapped")
	}
	if l := app.MapLead(map[string]any{"request_access": "yes"}); !l.RequestAccess {
		t.Fatal("string yes not mapped")
	}
	if l := app.MapLead(map[string]any{"request_access": "no"}); l.RequestAccess {
		t.Fatal("string no mapped to true")
	}
}

func TestMapLead_UnknownRoleDefaultsToInvestor(t *testing.T) {
	l := app.MapLead(map[string]any{"role": "wizard"})
	if l.Role != domain.RoleInvestor {
		t.Fatalf("role: %s", l.Role)
	}
}
