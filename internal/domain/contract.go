package domain

import "time"

// Contract types mirror the onboarding roles.
const (
	ContractInvestorMandate = "investor_mandate"
	ContractSellerMandate   = "seller_mandate"
	ContractAgencyAgreement = "agency_agreement"
)

type Contract struct {
	ID           int64
	UserID       int64
	Type         string
	SignatureURL *string
	SignedAt     *time.Time
	ContractText string
	CriteriaJSON []byte // structured form data the text was generated from
}

type Profile struct {
	ID          int64
	FullName    *string
	Email       *string
	Role        string
	Status      string
	CompanyName *string
	APIToken    *string
}
