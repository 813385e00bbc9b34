package httpserver

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"offmarket_estates/internal/adapters/observability"
	"offmarket_estates/internal/app"
	"offmarket_estates/internal/domain"
	"offmarket_estates/internal/routes"
)

type Handlers struct {
	Q         *app.QueryService
	Leads     *app.LeadService
	Contracts *app.ContractService

	LeadRepo     domain.LeadRepository
	ProfileRepo  domain.ProfileRepository
	PropertyRepo domain.PropertyRepository

	Resolver *routes.Resolver
	Catalog  *routes.Catalog
	SiteURL  string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/sitemap.xml", h.sitemap)

	s.mux.Get("/v1/nav/resolve", h.navResolve)
	s.mux.Get("/v1/nav/switch", h.navSwitch)
	s.mux.Get("/v1/pages/{slug}", h.getPage)

	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/properties/{id}", h.getProperty)

	s.mux.Post("/v1/leads", h.submitLead)
	s.mux.Post("/v1/contact", h.submitContact)

	s.mux.Group(func(m chi.Router) {
		m.Use(Authenticate(h.ProfileRepo))

		m.Group(func(dash chi.Router) {
			dash.Use(RequireAuth)
			dash.Post("/v1/contracts", h.signContract)
			dash.Get("/v1/contracts/{id}", h.getContract)
		})

		m.Group(func(admin chi.Router) {
			admin.Use(RequireAdmin)
			admin.Get("/v1/admin/leads", h.adminListLeads)
			admin.Post("/v1/admin/users/{id}/approve", h.adminApproveUser)
			admin.Get("/v1/admin/matches", h.adminMatches)
		})
	})
}

// selectLang only ever returns a supported code: redirects, headers and
// paths built from it must all point at a real language root, even when
// the query carries garbage.
func selectLang(r *http.Request) string {
	if raw := r.URL.Query().Get("lang"); raw != "" {
		if lang, ok := routes.NormalizeLanguage(raw); ok {
			return lang
		}
	}
	return routes.MatchAcceptLanguage(r.Header.Get("Accept-Language"))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- localized navigation ----

func (h *Handlers) sitemap(w http.ResponseWriter, r *http.Request) {
	out, err := routes.BuildSitemap(h.SiteURL, h.Resolver)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Sitemap Failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Error().Err(err).Msg("failed to write sitemap body")
	}
}

func (h *Handlers) navResolve(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	lang := selectLang(r)

	key, ok := h.Resolver.ResolveKey(slug, lang)
	if !ok {
		// resolution misses are not errors: hand the SPA the language
		// root to land on
		writeJSON(w, http.StatusOK, map[string]string{"redirect": "/" + lang})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"key":  key,
		"path": h.Resolver.Path(key, lang),
	})
}

func (h *Handlers) navSwitch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := h.Resolver.SwitchLanguage(q.Get("slug"), q.Get("from"), q.Get("to"))
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// copyValue is the wire shape of a catalog lookup; the SPA switches on
// kind instead of guessing the payload shape.
type copyValue struct {
	Kind string   `json:"kind"`
	Text string   `json:"text,omitempty"`
	List []string `json:"list,omitempty"`
}

var pageFields = []string{"title", "intro", "highlights", "steps"}

func (h *Handlers) getPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	lang := selectLang(r)

	key, ok := h.Resolver.ResolveKey(slug, lang)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"redirect": "/" + lang})
		return
	}

	page := map[string]any{
		"key":      key,
		"language": lang,
		"path":     h.Resolver.Path(key, lang),
	}
	content := map[string]copyValue{}
	for _, field := range pageFields {
		v := h.Catalog.Lookup(lang, key+"."+field)
		switch v.Kind {
		case routes.Text:
			content[field] = copyValue{Kind: "text", Text: v.Text}
		case routes.List:
			content[field] = copyValue{Kind: "list", List: v.List}
		}
	}
	page["content"] = content

	w.Header().Set("Content-Language", lang)
	writeJSON(w, http.StatusOK, page)
}

// ---- properties ----

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	lang := selectLang(r)

	resp, err := h.Q.GetProperty(r.Context(), id, lang)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
		return
	}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Language", resp.Language)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getProperty body")
	}
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	lang := selectLang(r)

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	q := domain.PropertiesQuery{Lang: lang, Limit: limit}
	if loc := r.URL.Query().Get("location"); loc != "" {
		q.Location = &loc
	}
	if pt := r.URL.Query().Get("type"); pt != "" {
		q.Type = &pt
	}

	out, err := h.Q.ListProperties(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Listing Failed", "properties unavailable")
		return
	}

	etag, body := calcETagAndBody(out)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Language", lang)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listProperties body")
	}
}

// ---- lead intake / contact ----

func (h *Handlers) submitLead(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		observability.ObserveLead("invalid")
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected a JSON object")
		return
	}

	l := app.MapLead(payload)
	if l.Email == nil && l.Phone == nil {
		observability.ObserveLead("invalid")
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Submission", "email or phone is required")
		return
	}

	key := r.Header.Get("Idempotency-Key")
	if key == "" {
		if s, ok := payload["submission_key"].(string); ok {
			key = s
		}
	}

	id, err := h.Leads.Submit(r.Context(), l, key)
	switch {
	case err == nil:
		observability.ObserveLead("accepted")
		writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
	case err == app.ErrDuplicateSubmission:
		observability.ObserveLead("duplicate")
		writeProblem(w, http.StatusConflict, "Duplicate Submission", "this form was already submitted")
	default:
		observability.ObserveLead("error")
		writeProblem(w, http.StatusInternalServerError, "Submission Failed", "could not store the submission")
	}
}

func (h *Handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected a JSON object")
		return
	}

	fields := map[string]string{}
	for _, k := range []string{"name", "email", "phone", "subject", "message"} {
		if s, ok := payload[k].(string); ok && s != "" {
			fields[k] = s
		}
	}
	if fields["email"] == "" {
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Submission", "email is required")
		return
	}

	key, _ := payload["submission_key"].(string)
	if hk := r.Header.Get("Idempotency-Key"); hk != "" {
		key = hk
	}

	if err := h.Leads.Contact(r.Context(), fields, key); err != nil {
		if err == app.ErrDuplicateSubmission {
			writeProblem(w, http.StatusConflict, "Duplicate Submission", "this form was already submitted")
			return
		}
		// best effort: log and tell the user, never crash the page
		log.Warn().Err(err).Msg("contact relay failed")
		writeProblem(w, http.StatusBadGateway, "Relay Failed", "message could not be delivered, please retry")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// ---- contracts (dashboard) ----

type signContractRequest struct {
	Type         string           `json:"type"`
	Lang         string           `json:"lang"`
	Data         app.ContractData `json:"data"`
	SignaturePNG string           `json:"signature_png"` // base64
}

func (h *Handlers) signContract(w http.ResponseWriter, r *http.Request) {
	p, _ := profileFrom(r)

	var req signContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "expected a JSON object")
		return
	}

	var sig []byte
	if req.SignaturePNG != "" {
		var err error
		sig, err = base64.StdEncoding.DecodeString(req.SignaturePNG)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid Signature", "signature_png must be base64")
			return
		}
	}

	c, err := h.Contracts.Sign(r.Context(), p.ID, req.Type, req.Lang, req.Data, sig)
	if err != nil {
		if err == app.ErrUnknownContractType {
			writeProblem(w, http.StatusUnprocessableEntity, "Invalid Contract Type", req.Type)
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Signing Failed", "contract could not be stored")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) getContract(w http.ResponseWriter, r *http.Request) {
	p, _ := profileFrom(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}

	c, err := h.Contracts.Get(r.Context(), id)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "contract not found")
		return
	}
	if c.UserID != p.ID && p.Role != domain.RoleAdmin {
		writeProblem(w, http.StatusForbidden, "Access Denied", "not your contract")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ---- admin ----

func (h *Handlers) adminListLeads(w http.ResponseWriter, r *http.Request) {
	q := domain.LeadsQuery{Limit: 200}
	if s := r.URL.Query().Get("status"); s != "" {
		q.Status = &s
	}
	if role := r.URL.Query().Get("role"); role != "" {
		q.Role = &role
	}
	leads, err := h.LeadRepo.ListLeads(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Listing Failed", "leads unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": leads})
}

func (h *Handlers) adminApproveUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.ProfileRepo.SetProfileStatus(r.Context(), id, domain.StatusApproved); err != nil {
		if err == domain.ErrNotFound {
			writeProblem(w, http.StatusNotFound, "Not Found", "user not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Approval Failed", "status update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const matchingScanLimit = 500

func (h *Handlers) adminMatches(w http.ResponseWriter, r *http.Request) {
	page, err := h.PropertyRepo.ListProperties(r.Context(), domain.PropertiesQuery{
		Lang:  routes.DefaultLanguage,
		Limit: matchingScanLimit,
	})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Matching Failed", "properties unavailable")
		return
	}
	leads, err := h.LeadRepo.ListLeads(r.Context(), domain.LeadsQuery{Limit: matchingScanLimit})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Matching Failed", "leads unavailable")
		return
	}

	properties := make([]domain.Property, 0, len(page.Items))
	for _, pv := range page.Items {
		properties = append(properties, domain.Property{ID: pv.ID, Location: pv.Location, Title: pv.Title})
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": app.ComputeMatches(properties, leads)})
}
