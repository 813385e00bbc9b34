package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"offmarket_estates/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullF64(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- properties ----

func (r *Repo) UpsertProperty(ctx context.Context, p domain.Property) error {
	imgs, _ := json.Marshal(p.Images)
	_, err := r.db.ExecContext(ctx, upsertPropertySQL,
		p.ID,
		valInt64(p.OwnerID),
		valStr(p.Title),
		valStr(p.Description),
		valF64(p.Price),
		valStr(p.Location),
		valStr(p.PropertyType),
		valF64(p.CommissionPercentage),
		p.IsExclusive,
		valStr(p.DossierURL),
		string(imgs),
	)
	return err
}

func (r *Repo) UpsertI18n(ctx context.Context, i domain.PropertyI18n) error {
	_, err := r.db.ExecContext(ctx, upsertPropertyI18nSQL,
		i.PropertyID,
		i.Lang,
		valStr(i.Title),
		valStr(i.Description),
	)
	return err
}

func (r *Repo) GetProperty(ctx context.Context, id int64, lang string) (domain.PropertyView, error) {
	row := r.db.QueryRowContext(ctx, getPropertySQL, lang, id)

	var pv domain.PropertyView
	var baseTitle, baseDesc sql.NullString
	var price, commission sql.NullFloat64
	var location, ptype, dossier sql.NullString
	var imagesJSON []byte
	var i18nTitle, i18nDesc sql.NullString

	if err := row.Scan(
		&pv.ID,
		&baseTitle,
		&baseDesc,
		&price,
		&location,
		&ptype,
		&commission,
		&pv.IsExclusive,
		&dossier,
		&imagesJSON,
		&i18nTitle,
		&i18nDesc,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.PropertyView{}, domain.ErrNotFound
		}
		return domain.PropertyView{}, err
	}

	// Prefer localized copy when present, fall back to base columns.
	if i18nTitle.Valid && strings.TrimSpace(i18nTitle.String) != "" {
		pv.Title = nullStr(i18nTitle)
	} else {
		pv.Title = nullStr(baseTitle)
	}
	if i18nDesc.Valid && strings.TrimSpace(i18nDesc.String) != "" {
		pv.Description = nullStr(i18nDesc)
	} else {
		pv.Description = nullStr(baseDesc)
	}

	pv.Price = nullF64(price)
	pv.Location = nullStr(location)
	pv.PropertyType = nullStr(ptype)
	pv.CommissionPercentage = nullF64(commission)
	pv.DossierURL = nullStr(dossier)
	_ = json.Unmarshal(imagesJSON, &pv.Images)
	pv.Language = lang
	return pv, nil
}

func (r *Repo) ListProperties(ctx context.Context, q domain.PropertiesQuery) (domain.PropertiesPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listPropertiesSQL,
		q.Lang,
		valStr(q.Location), valStr(q.Location),
		valStr(q.Type), valStr(q.Type),
		limit,
	)
	if err != nil {
		return domain.PropertiesPage{}, err
	}
	defer rows.Close()

	var out []domain.PropertyView
	for rows.Next() {
		var pv domain.PropertyView
		var title, location, ptype sql.NullString
		var price sql.NullFloat64
		if err := rows.Scan(&pv.ID, &title, &price, &location, &ptype, &pv.IsExclusive); err != nil {
			return domain.PropertiesPage{}, err
		}
		pv.Title = nullStr(title)
		pv.Price = nullF64(price)
		pv.Location = nullStr(location)
		pv.PropertyType = nullStr(ptype)
		pv.Language = q.Lang
		out = append(out, pv)
	}
	if err := rows.Err(); err != nil {
		return domain.PropertiesPage{}, err
	}
	return domain.PropertiesPage{Items: out}, nil
}

// ---- leads ----

func (r *Repo) InsertLead(ctx context.Context, l domain.Lead) (int64, error) {
	var regions any
	if len(l.TargetRegions) > 0 {
		b, _ := json.Marshal(l.TargetRegions)
		regions = string(b)
	}
	res, err := r.db.ExecContext(ctx, insertLeadSQL,
		valStr(l.FullName),
		valStr(l.Email),
		valStr(l.Phone),
		valF64(l.Budget),
		valStr(l.TargetLocation),
		regions,
		valStr(l.Intent),
		l.RequestAccess,
		valStr(l.Message),
		l.Role,
		l.Status,
		valStr(l.Source),
		valStr(l.DocumentURL),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) ListLeads(ctx context.Context, q domain.LeadsQuery) ([]domain.Lead, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, listLeadsSQL,
		valStr(q.Status), valStr(q.Status),
		valStr(q.Role), valStr(q.Role),
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func (r *Repo) ListUnrelayed(ctx context.Context, limit int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, listUnrelayedSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

func scanLeads(rows *sql.Rows) ([]domain.Lead, error) {
	var out []domain.Lead
	for rows.Next() {
		var l domain.Lead
		var fullName, email, phone, targetLoc, intent, message, source, docURL sql.NullString
		var budget sql.NullFloat64
		var regionsJSON []byte
		var relayedAt sql.NullTime
		if err := rows.Scan(
			&l.ID,
			&fullName,
			&email,
			&phone,
			&budget,
			&targetLoc,
			&regionsJSON,
			&intent,
			&l.RequestAccess,
			&message,
			&l.Role,
			&l.Status,
			&source,
			&docURL,
			&relayedAt,
		); err != nil {
			return nil, err
		}
		l.FullName = nullStr(fullName)
		l.Email = nullStr(email)
		l.Phone = nullStr(phone)
		l.Budget = nullF64(budget)
		l.TargetLocation = nullStr(targetLoc)
		if len(regionsJSON) > 0 {
			_ = json.Unmarshal(regionsJSON, &l.TargetRegions)
		}
		l.Intent = nullStr(intent)
		l.Message = nullStr(message)
		l.Source = nullStr(source)
		l.DocumentURL = nullStr(docURL)
		if relayedAt.Valid {
			t := relayedAt.Time
			l.RelayedAt = &t
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) MarkRelayed(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, markRelayedSQL, id)
	return err
}

func (r *Repo) LogRelayMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertRelayMissSQL, id, status, reason)
	return err
}

// ---- contracts ----

func (r *Repo) InsertContract(ctx context.Context, c domain.Contract) (int64, error) {
	var signedAt any
	if c.SignedAt != nil {
		signedAt = *c.SignedAt
	}
	var criteria any
	if len(c.CriteriaJSON) > 0 {
		criteria = string(c.CriteriaJSON)
	}
	res, err := r.db.ExecContext(ctx, insertContractSQL,
		c.UserID,
		c.Type,
		valStr(c.SignatureURL),
		signedAt,
		c.ContractText,
		criteria,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetContract(ctx context.Context, id int64) (domain.Contract, error) {
	row := r.db.QueryRowContext(ctx, getContractSQL, id)

	var c domain.Contract
	var sigURL sql.NullString
	var signedAt sql.NullTime
	var criteriaBuf []byte

	if err := row.Scan(&c.ID, &c.UserID, &c.Type, &sigURL, &signedAt, &c.ContractText, &criteriaBuf); err != nil {
		if err == sql.ErrNoRows {
			return domain.Contract{}, domain.ErrNotFound
		}
		return domain.Contract{}, err
	}
	c.SignatureURL = nullStr(sigURL)
	if signedAt.Valid {
		t := signedAt.Time
		c.SignedAt = &t
	}
	if len(criteriaBuf) > 0 {
		c.CriteriaJSON = append([]byte(nil), criteriaBuf...)
	}
	return c, nil
}

// ---- profiles ----

func (r *Repo) GetProfileByToken(ctx context.Context, token string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, getProfileByTokenSQL, token)

	var p domain.Profile
	var fullName, email, company, apiToken sql.NullString
	if err := row.Scan(&p.ID, &fullName, &email, &p.Role, &p.Status, &company, &apiToken); err != nil {
		if err == sql.ErrNoRows {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	p.FullName = nullStr(fullName)
	p.Email = nullStr(email)
	p.CompanyName = nullStr(company)
	p.APIToken = nullStr(apiToken)
	return p, nil
}

func (r *Repo) SetProfileStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx, setProfileStatusSQL, status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
