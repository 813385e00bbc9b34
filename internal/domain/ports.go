package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrRelayRejected marks a terminal upstream rejection (4xx other
	// than rate limiting); retrying will not help.
	ErrRelayRejected = errors.New("relay rejected submission")
)

// RelayRejectedError wraps ErrRelayRejected with the upstream status code
// so the miss log stays diagnostic. Matches errors.Is(ErrRelayRejected).
type RelayRejectedError struct {
	Status int
	Body   string
}

func (e *RelayRejectedError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", ErrRelayRejected, e.Status, e.Body)
}

func (e *RelayRejectedError) Unwrap() error { return ErrRelayRejected }

type PropertyRepository interface {
	// Write paths
	UpsertProperty(ctx context.Context, p Property) error
	UpsertI18n(ctx context.Context, i PropertyI18n) error

	// Read paths
	GetProperty(ctx context.Context, id int64, lang string) (PropertyView, error)
	ListProperties(ctx context.Context, q PropertiesQuery) (PropertiesPage, error)
}

type LeadRepository interface {
	InsertLead(ctx context.Context, l Lead) (int64, error)
	ListLeads(ctx context.Context, q LeadsQuery) ([]Lead, error)
	ListUnrelayed(ctx context.Context, limit int) ([]Lead, error)
	MarkRelayed(ctx context.Context, id int64) error
	LogRelayMiss(ctx context.Context, id int64, status int, reason string) error
}

type ContractRepository interface {
	InsertContract(ctx context.Context, c Contract) (int64, error)
	GetContract(ctx context.Context, id int64) (Contract, error)
}

type ProfileRepository interface {
	GetProfileByToken(ctx context.Context, token string) (Profile, error)
	SetProfileStatus(ctx context.Context, id int64, status string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	// SetNX claims key for ttlSec seconds; false means another submission
	// already holds it (duplicate-submit guard).
	SetNX(ctx context.Context, key string, ttlSec int) (bool, error)
}

// RelayClient forwards a submission to the third-party email-forwarding
// endpoint. Best effort: callers treat rejections as terminal and retry
// only transient failures.
type RelayClient interface {
	Forward(ctx context.Context, fields map[string]string, attachment *Attachment) error
}

// ObjectStore accepts binary uploads and returns a reference URL.
type ObjectStore interface {
	Put(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error)
}

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Read models & queries

type PropertyView struct {
	ID                   int64
	Title                *string
	Description          *string
	Price                *float64
	Location             *string
	PropertyType         *string
	CommissionPercentage *float64
	IsExclusive          bool
	DossierURL           *string
	Images               []string
	Language             string
}

type PropertiesQuery struct {
	Lang     string
	Location *string
	Type     *string
	Limit    int
}

type PropertiesPage struct {
	Items []PropertyView
}

type LeadsQuery struct {
	Status *string
	Role   *string
	Limit  int
}
