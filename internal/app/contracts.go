package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"offmarket_estates/internal/domain"
)

var ErrUnknownContractType = errors.New("unknown contract type")

// ContractData is the structured form data a contract is generated from.
type ContractData struct {
	FullName       string
	CompanyName    string
	TargetLocation string
	Budget         string
	PropertyTitle  string
	Commission     string
	Date           string
}

// contractTemplates: type -> lang -> template. Only en and es variants
// exist; GenerateContract falls back to en for the rest.
var contractTemplates = map[string]map[string]*template.Template{
	domain.ContractInvestorMandate: {
		"en": tmpl("investor_mandate_en", investorMandateEN),
		"es": tmpl("investor_mandate_es", investorMandateES),
	},
	domain.ContractSellerMandate: {
		"en": tmpl("seller_mandate_en", sellerMandateEN),
		"es": tmpl("seller_mandate_es", sellerMandateES),
	},
	domain.ContractAgencyAgreement: {
		"en": tmpl("agency_agreement_en", agencyAgreementEN),
		"es": tmpl("agency_agreement_es", agencyAgreementES),
	},
}

func tmpl(name, body string) *template.Template {
	return template.Must(template.New(name).Parse(body))
}

// GenerateContract renders the legal text for (type, data, lang). Pure:
// no I/O, deterministic given its inputs.
func GenerateContract(contractType string, data ContractData, lang string) (string, error) {
	byLang, ok := contractTemplates[contractType]
	if !ok {
		return "", ErrUnknownContractType
	}
	t, ok := byLang[lang]
	if !ok {
		t = byLang["en"]
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type ContractService struct {
	repo    domain.ContractRepository
	store   domain.ObjectStore
	bucket  string
	nowFunc func() time.Time
}

func NewContractService(r domain.ContractRepository, store domain.ObjectStore, bucket string) *ContractService {
	return &ContractService{repo: r, store: store, bucket: bucket, nowFunc: time.Now}
}

// Sign generates the contract text, stores the captured signature image
// and persists the contract row. A storage degradation (missing bucket)
// yields a placeholder URL rather than blocking the flow.
func (s *ContractService) Sign(ctx context.Context, userID int64, contractType, lang string, data ContractData, signaturePNG []byte) (domain.Contract, error) {
	text, err := GenerateContract(contractType, data, lang)
	if err != nil {
		return domain.Contract{}, err
	}

	var sigURL *string
	if len(signaturePNG) > 0 {
		name := fmt.Sprintf("signatures/%d/%s.png", userID, uuid.NewString())
		url, err := s.store.Put(ctx, s.bucket, name, signaturePNG, "image/png")
		if err != nil {
			return domain.Contract{}, err
		}
		sigURL = &url
	}

	criteria, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("marshal contract criteria failed")
	}

	now := s.nowFunc().UTC()
	c := domain.Contract{
		UserID:       userID,
		Type:         contractType,
		SignatureURL: sigURL,
		SignedAt:     &now,
		ContractText: text,
		CriteriaJSON: criteria,
	}
	id, err := s.repo.InsertContract(ctx, c)
	if err != nil {
		return domain.Contract{}, err
	}
	c.ID = id
	return c, nil
}

func (s *ContractService) Get(ctx context.Context, id int64) (domain.Contract, error) {
	return s.repo.GetContract(ctx, id)
}

const investorMandateEN = `INVESTOR SEARCH MANDATE

Date: {{.Date}}

{{.FullName}} (the "Investor") instructs the Broker to source off-market
investment opportunities matching the following criteria:

  Target location: {{.TargetLocation}}
  Budget: {{.Budget}}

The Investor undertakes to keep every dossier received strictly
confidential and to negotiate exclusively through the Broker for any
asset introduced under this mandate.`

const investorMandateES = `MANDATO DE BÚSQUEDA DE INVERSIÓN

Fecha: {{.Date}}

{{.FullName}} (el "Inversor") encarga al Intermediario la búsqueda de
oportunidades de inversión off-market conforme a los siguientes criterios:

  Zona objetivo: {{.TargetLocation}}
  Presupuesto: {{.Budget}}

El Inversor se compromete a mantener la confidencialidad de cada dossier
recibido y a negociar exclusivamente a través del Intermediario cualquier
activo presentado bajo este mandato.`

const sellerMandateEN = `SALE MANDATE

Date: {{.Date}}

{{.FullName}} (the "Owner") grants the Broker a mandate to discreetly
market the property "{{.PropertyTitle}}" on an off-market basis.

  Agreed commission: {{.Commission}}

The Owner warrants ownership of the asset and agrees not to circumvent
introductions made by the Broker.`

const sellerMandateES = `MANDATO DE VENTA

Fecha: {{.Date}}

{{.FullName}} (el "Propietario") otorga al Intermediario un mandato para
comercializar discretamente el inmueble "{{.PropertyTitle}}" en régimen
off-market.

  Comisión pactada: {{.Commission}}

El Propietario garantiza la titularidad del activo y se compromete a no
eludir las presentaciones realizadas por el Intermediario.`

const agencyAgreementEN = `AGENCY COLLABORATION AGREEMENT

Date: {{.Date}}

{{.CompanyName}}, represented by {{.FullName}} (the "Agency"), and the
Broker agree to collaborate on shared mandates.

  Commission split: {{.Commission}}

Client introductions remain the property of the introducing party; both
parties commit to full confidentiality on every shared dossier.`

const agencyAgreementES = `ACUERDO DE COLABORACIÓN ENTRE AGENCIAS

Fecha: {{.Date}}

{{.CompanyName}}, representada por {{.FullName}} (la "Agencia"), y el
Intermediario acuerdan colaborar en mandatos compartidos.

  Reparto de comisión: {{.Commission}}

Las presentaciones de clientes pertenecen a la parte que las origina;
ambas partes se comprometen a plena confidencialidad sobre cada dossier
compartido.`
