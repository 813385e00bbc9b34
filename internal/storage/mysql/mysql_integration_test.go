//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"offmarket_estates/internal/domain"
	mysqlrepo "offmarket_estates/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

var schema = []string{
	`CREATE TABLE properties (
		id BIGINT PRIMARY KEY,
		owner_id BIGINT NULL,
		title VARCHAR(255) NULL,
		description TEXT NULL,
		price DECIMAL(14,2) NULL,
		location VARCHAR(255) NULL,
		property_type VARCHAR(64) NULL,
		commission_percentage DECIMAL(5,2) NULL,
		is_exclusive TINYINT(1) NOT NULL DEFAULT 0,
		dossier_url VARCHAR(512) NULL,
		images JSON NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE property_i18n (
		property_id BIGINT NOT NULL,
		lang VARCHAR(8) NOT NULL,
		title VARCHAR(255) NULL,
		description TEXT NULL,
		PRIMARY KEY (property_id, lang)
	)`,
	`CREATE TABLE leads (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		full_name VARCHAR(255) NULL,
		email VARCHAR(255) NULL,
		phone VARCHAR(64) NULL,
		budget DECIMAL(14,2) NULL,
		target_location VARCHAR(255) NULL,
		target_regions JSON NULL,
		intent VARCHAR(16) NULL,
		request_access TINYINT(1) NOT NULL DEFAULT 0,
		message TEXT NULL,
		role VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		source VARCHAR(64) NULL,
		document_url VARCHAR(512) NULL,
		relayed_at TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_leads_relayed (relayed_at)
	)`,
	`CREATE TABLE relay_misses (
		lead_id BIGINT PRIMARY KEY,
		http_status INT NOT NULL,
		reason VARCHAR(255) NULL,
		seen_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE contracts (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		type VARCHAR(32) NOT NULL,
		signature_url VARCHAR(512) NULL,
		signed_at TIMESTAMP NULL,
		contract_text MEDIUMTEXT NOT NULL,
		criteria JSON NULL
	)`,
	`CREATE TABLE profiles (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		full_name VARCHAR(255) NULL,
		email VARCHAR(255) NULL,
		role VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		company_name VARCHAR(255) NULL,
		api_token VARCHAR(64) NULL,
		UNIQUE KEY uq_profiles_token (api_token)
	)`,
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=offmarket",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/offmarket?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC", hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for _, ddl := range schema {
		if _, err := db.Exec(ddl); err != nil {
			t.Fatalf("schema: %v", err)
		}
	}
	return db
}

func TestRepo_PropertyLocalization(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	p := domain.Property{
		ID:           301,
		Title:        pstr("Beachfront hotel"),
		Description:  pstr("Operating asset"),
		Price:        pfloat(4200000),
		Location:     pstr("Marbella, Málaga"),
		PropertyType: pstr("hotel"),
		IsExclusive:  true,
		Images:       []string{"a.jpg", "b.jpg"},
	}
	if err := repo.UpsertProperty(ctx, p); err != nil {
		t.Fatalf("UpsertProperty: %v", err)
	}
	if err := repo.UpsertI18n(ctx, domain.PropertyI18n{
		PropertyID: 301, Lang: "es",
		Title:       pstr("Hotel primera línea"),
		Description: pstr("Activo en explotación"),
	}); err != nil {
		t.Fatalf("UpsertI18n: %v", err)
	}

	es, err := repo.GetProperty(ctx, 301, "es")
	if err != nil {
		t.Fatalf("GetProperty es: %v", err)
	}
	if es.Title == nil || *es.Title != "Hotel primera línea" {
		t.Fatalf("es title = %v", es.Title)
	}
	if len(es.Images) != 2 {
		t.Fatalf("images = %v", es.Images)
	}

	// no German row: base columns must come back
	de, err := repo.GetProperty(ctx, 301, "de")
	if err != nil {
		t.Fatalf("GetProperty de: %v", err)
	}
	if de.Title == nil || *de.Title != "Beachfront hotel" {
		t.Fatalf("de title = %v", de.Title)
	}

	if _, err := repo.GetProperty(ctx, 999, "en"); err != domain.ErrNotFound {
		t.Fatalf("missing property err = %v", err)
	}

	loc := "Marbella"
	page, err := repo.ListProperties(ctx, domain.PropertiesQuery{Lang: "es", Location: &loc, Limit: 10})
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(page.Items) != 1 || *page.Items[0].Title != "Hotel primera línea" {
		t.Fatalf("page = %+v", page.Items)
	}
}

func TestRepo_LeadRelayLifecycle(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	id, err := repo.InsertLead(ctx, domain.Lead{
		FullName:       pstr("Ana Torres"),
		Email:          pstr("ana@example.com"),
		Budget:         pfloat(1500000),
		TargetLocation: pstr("Marbella"),
		TargetRegions:  []string{"Marbella", "Estepona"},
		Role:           domain.RoleInvestor,
		Status:         domain.StatusNew,
	})
	if err != nil {
		t.Fatalf("InsertLead: %v", err)
	}

	pending, err := repo.ListUnrelayed(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnrelayed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id {
		t.Fatalf("pending = %+v", pending)
	}
	if len(pending[0].TargetRegions) != 2 {
		t.Fatalf("regions = %v", pending[0].TargetRegions)
	}

	if err := repo.MarkRelayed(ctx, id); err != nil {
		t.Fatalf("MarkRelayed: %v", err)
	}
	pending, err = repo.ListUnrelayed(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnrelayed after mark: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("still pending: %+v", pending)
	}

	if err := repo.LogRelayMiss(ctx, id, 403, "rejected"); err != nil {
		t.Fatalf("LogRelayMiss: %v", err)
	}
	// idempotent on repeat
	if err := repo.LogRelayMiss(ctx, id, 403, "rejected"); err != nil {
		t.Fatalf("LogRelayMiss repeat: %v", err)
	}

	status := domain.StatusNew
	leads, err := repo.ListLeads(ctx, domain.LeadsQuery{Status: &status, Limit: 10})
	if err != nil {
		t.Fatalf("ListLeads: %v", err)
	}
	if len(leads) != 1 || leads[0].RelayedAt == nil {
		t.Fatalf("leads = %+v", leads)
	}
}

func TestRepo_ContractsAndProfiles(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if _, err := db.Exec(
		`INSERT INTO profiles (full_name, email, role, status, api_token) VALUES (?, ?, ?, ?, ?)`,
		"Ana Torres", "ana@example.com", domain.RoleInvestor, domain.StatusNew, "tok-abc",
	); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	p, err := repo.GetProfileByToken(ctx, "tok-abc")
	if err != nil {
		t.Fatalf("GetProfileByToken: %v", err)
	}
	if p.Role != domain.RoleInvestor || *p.FullName != "Ana Torres" {
		t.Fatalf("profile = %+v", p)
	}
	if _, err := repo.GetProfileByToken(ctx, "nope"); err != domain.ErrNotFound {
		t.Fatalf("unknown token err = %v", err)
	}

	if err := repo.SetProfileStatus(ctx, p.ID, domain.StatusApproved); err != nil {
		t.Fatalf("SetProfileStatus: %v", err)
	}
	if err := repo.SetProfileStatus(ctx, 9999, domain.StatusApproved); err != domain.ErrNotFound {
		t.Fatalf("unknown profile err = %v", err)
	}

	id, err := repo.InsertContract(ctx, domain.Contract{
		UserID:       p.ID,
		Type:         domain.ContractInvestorMandate,
		SignatureURL: pstr("https://cdn/sig.png"),
		ContractText: "INVESTOR SEARCH MANDATE ...",
		CriteriaJSON: []byte(`{"Budget":"1500000"}`),
	})
	if err != nil {
		t.Fatalf("InsertContract: %v", err)
	}
	c, err := repo.GetContract(ctx, id)
	if err != nil {
		t.Fatalf("GetContract: %v", err)
	}
	if c.UserID != p.ID || c.Type != domain.ContractInvestorMandate {
		t.Fatalf("contract = %+v", c)
	}
	if string(c.CriteriaJSON) == "" {
		t.Fatal("criteria not round-tripped")
	}
}
