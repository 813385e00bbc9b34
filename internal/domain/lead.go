package domain

import "time"

// Lead intent values.
const (
	IntentBuy  = "buy"
	IntentSell = "sell"
)

// Lead role classifications.
const (
	RoleInvestor = "investor"
	RoleSeller   = "seller"
	RoleAgency   = "agency"
	RoleAdmin    = "admin"
)

// Lead status lifecycle. New leads start as StatusNew; the admin invite
// flow moves them to StatusInvited.
const (
	StatusNew      = "new"
	StatusInvited  = "invited"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Lead struct {
	ID             int64
	FullName       *string
	Email          *string
	Phone          *string
	Budget         *float64
	TargetLocation *string
	// TargetRegions carries structured search profiles when the prospect
	// declared more than one region; TargetLocation alone otherwise.
	TargetRegions []string
	Intent        *string
	RequestAccess bool
	Message       *string
	Role          string
	Status        string
	Source        *string
	DocumentURL   *string
	RelayedAt     *time.Time
}
