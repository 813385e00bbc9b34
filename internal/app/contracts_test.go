package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"offmarket_estates/internal/app"
	"offmarket_estates/internal/domain"
)

type fakeContractRepo struct {
	stored []domain.Contract
}

func (f *fakeContractRepo) InsertContract(ctx context.Context, c domain.Contract) (int64, error) {
	f.stored = append(f.stored, c)
	return int64(len(f.stored)), nil
}

func (f *fakeContractRepo) GetContract(ctx context.Context, id int64) (domain.Contract, error) {
	if id < 1 || int(id) > len(f.stored) {
		return domain.Contract{}, domain.ErrNotFound
	}
	return f.stored[id-1], nil
}

type fakeStore struct {
	puts int
	url  string
	err  error
}

func (f *fakeStore) Put(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error) {
	f.puts++
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://store.test/" + bucket + "/" + name, nil
}

func TestGenerateContract_Localized(t *testing.T) {
	data := app.ContractData{FullName: "Ana Ruiz", TargetLocation: "Marbella", Budget: "2.000.000 EUR", Date: "2026-08-27"}

	es, err := app.GenerateContract(domain.ContractInvestorMandate, data, "es")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.Contains(es, "MANDATO DE BÚSQUEDA") || !strings.Contains(es, "Ana Ruiz") || !strings.Contains(es, "Marbella") {
		t.Fatalf("unexpected es text:\n%s", es)
	}

	en, err := app.GenerateContract(domain.ContractInvestorMandate, data, "en")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.Contains(en, "INVESTOR SEARCH MANDATE") {
		t.Fatalf("unexpected en text:\n%s", en)
	}
}

func TestGenerateContract_UnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	data := app.ContractData{FullName: "Ken", Date: "2026-08-27"}
	got, err := app.GenerateContract(domain.ContractSellerMandate, data, "ja")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.Contains(got, "SALE MANDATE") {
		t.Fatalf("expected en fallback, got:\n%s", got)
	}
}

func TestGenerateContract_UnknownType(t *testing.T) {
	_, err := app.GenerateContract("lease", app.ContractData{}, "en")
	if !errors.Is(err, app.ErrUnknownContractType) {
		t.Fatalf("expected ErrUnknownContractType, got %v", err)
	}
}

func TestSign_StoresSignatureAndContract(t *testing.T) {
	repo := &fakeContractRepo{}
	store := &fakeStore{}
	svc := app.NewContractService(repo, store, "contracts")

	c, err := svc.Sign(context.Background(), 12, domain.ContractAgencyAgreement, "en",
		app.ContractData{FullName: "Iris", CompanyName: "Iris Estates", Commission: "50/50"},
		[]byte{0x89, 0x50, 0x4e, 0x47})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if c.ID != 1 || c.SignedAt == nil || c.SignatureURL == nil {
		t.Fatalf("incomplete contract: %+v", c)
	}
	if store.puts != 1 {
		t.Fatalf("expected one upload, got %d", store.puts)
	}
	if !strings.Contains(c.ContractText, "Iris Estates") {
		t.Fatalf("contract text missing company:\n%s", c.ContractText)
	}
}

func TestSign_NoSignatureSkipsUpload(t *testing.T) {
	repo := &fakeContractRepo{}
	store := &fakeStore{}
	svc := app.NewContractService(repo, store, "contracts")

	c, err := svc.Sign(context.Background(), 3, domain.ContractSellerMandate, "es",
		app.ContractData{FullName: "Sol", PropertyTitle: "Villa Sol"}, nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if store.puts != 0 || c.SignatureURL != nil {
		t.Fatalf("unexpected upload: puts=%d url=%v", store.puts, c.SignatureURL)
	}
}
