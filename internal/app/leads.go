package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"offmarket_estates/internal/domain"
)

// ErrDuplicateSubmission is returned when a submission key is already
// claimed; the SPA's submit lock should prevent this, the server-side
// guard catches what slips through.
var ErrDuplicateSubmission = errors.New("duplicate submission")

const (
	relayTimeout = 10 * time.Second
	relayRetries = 1 // single bounded retry on transient failure
)

type LeadService struct {
	repo      domain.LeadRepository
	cache     domain.Cache
	relay     domain.RelayClient
	submitTTL time.Duration
}

func NewLeadService(r domain.LeadRepository, c domain.Cache, relay domain.RelayClient, submitTTL time.Duration) *LeadService {
	return &LeadService{repo: r, cache: c, relay: relay, submitTTL: submitTTL}
}

// Submit stores a new lead and forwards it to the email relay best-effort.
// submissionKey deduplicates repeated posts of the same form; empty keys
// get a fresh uuid (no dedup, but the insert still succeeds).
func (s *LeadService) Submit(ctx context.Context, l domain.Lead, submissionKey string) (int64, error) {
	if submissionKey == "" {
		submissionKey = uuid.NewString()
	}
	claimed, err := s.cache.SetNX(ctx, "submit:"+submissionKey, int(s.submitTTL.Seconds()))
	if err != nil {
		// cache outage must not block lead capture
		log.Warn().Err(err).Msg("submission dedup check failed, accepting submission")
	} else if !claimed {
		return 0, ErrDuplicateSubmission
	}

	l.Status = domain.StatusNew
	id, err := s.repo.InsertLead(ctx, l)
	if err != nil {
		return 0, err
	}
	l.ID = id

	// Relay failures are logged, not surfaced: the relay worker picks up
	// anything left with relayed_at NULL.
	if err := s.forward(ctx, l); err != nil {
		log.Warn().Int64("lead", id).Err(err).Msg("immediate relay failed, deferring to worker")
	} else if err := s.repo.MarkRelayed(ctx, id); err != nil {
		log.Warn().Int64("lead", id).Err(err).Msg("mark relayed failed")
	}
	return id, nil
}

// RelayPending drains leads the immediate forward missed. Terminal
// rejections are logged as misses so they are not retried forever.
func (s *LeadService) RelayPending(ctx context.Context, id int64, l domain.Lead) error {
	if err := s.forward(ctx, l); err != nil {
		if errors.Is(err, domain.ErrRelayRejected) {
			var rej *domain.RelayRejectedError
			status := 0 // unknown when only the bare sentinel arrives
			if errors.As(err, &rej) {
				status = rej.Status
			}
			_ = s.repo.LogRelayMiss(ctx, id, status, "rejected")
			_ = s.repo.MarkRelayed(ctx, id)
			return nil
		}
		return err
	}
	return s.repo.MarkRelayed(ctx, id)
}

// Contact forwards a plain contact-form submission. No lead row is
// created; the relay either takes it within the bounded retries or the
// message is lost (fire-and-forget per the sites' contact flow).
func (s *LeadService) Contact(ctx context.Context, fields map[string]string, submissionKey string) error {
	if submissionKey == "" {
		submissionKey = uuid.NewString()
	}
	claimed, err := s.cache.SetNX(ctx, "submit:"+submissionKey, int(s.submitTTL.Seconds()))
	if err != nil {
		log.Warn().Err(err).Msg("submission dedup check failed, accepting submission")
	} else if !claimed {
		return ErrDuplicateSubmission
	}

	return s.forwardFields(ctx, fields)
}

func (s *LeadService) ListUnrelayed(ctx context.Context, limit int) ([]domain.Lead, error) {
	return s.repo.ListUnrelayed(ctx, limit)
}

func (s *LeadService) forward(ctx context.Context, l domain.Lead) error {
	return s.forwardFields(ctx, relayFields(l))
}

func (s *LeadService) forwardFields(ctx context.Context, fields map[string]string) error {
	var lastErr error
	for attempt := 0; attempt <= relayRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, relayTimeout)
		err := s.relay.Forward(callCtx, fields, nil)
		cancel()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrRelayRejected) || ctx.Err() != nil {
			return err
		}
		lastErr = err
	}
	return lastErr
}

func relayFields(l domain.Lead) map[string]string {
	fields := map[string]string{
		"full_name":       deref(l.FullName),
		"email":           deref(l.Email),
		"phone":           deref(l.Phone),
		"target_location": deref(l.TargetLocation),
		"intent":          deref(l.Intent),
		"message":         deref(l.Message),
		"role":            l.Role,
		"source":          deref(l.Source),
	}
	if l.Budget != nil {
		fields["budget"] = fmt.Sprintf("%.2f", *l.Budget)
	}
	if l.RequestAccess {
		fields["request_access"] = "true"
	}
	if l.DocumentURL != nil {
		fields["document_url"] = *l.DocumentURL
	}
	return fields
}
