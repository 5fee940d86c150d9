package emergency

import (
	"context"
	"fmt"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/pkg/idgen"
)

type Service struct {
	nfcCards  repository.NfcCardRepository
	grants    repository.EmergencyRepository
	accessLog repository.AccessLogRepository
}

func NewService(
	nfcCards repository.NfcCardRepository,
	grants repository.EmergencyRepository,
	accessLog repository.AccessLogRepository,
) *Service {
	return &Service{nfcCards: nfcCards, grants: grants, accessLog: accessLog}
}

// Grant creates a two-hour access grant keyed by the tapped NFC card and
// writes an emergency-flagged access log entry. An unknown card fails
// before any side effect. The stored status never flips to expired;
// consumers compare ExpiresAt at read time.
func (s *Service) Grant(ctx context.Context, req *model.GrantEmergencyAccessRequest) (*model.EmergencyAccessGrant, error) {
	card, err := s.nfcCards.Get(ctx, req.NfcCardID)
	if err != nil {
		return nil, err
	}

	// CreatedAt and ExpiresAt come from the same instant so the grant
	// window is exactly GrantValidity wide.
	now := time.Now()
	grant := &model.EmergencyAccessGrant{
		Base:         model.Base{ID: idgen.New("EMG"), CreatedAt: now, UpdatedAt: now},
		PatientID:    card.PatientID,
		NfcCardID:    card.ID,
		AccessorID:   req.AccessorID,
		AccessorName: req.AccessorName,
		Reason:       req.Reason,
		Status:       "active",
		ExpiresAt:    now.Add(model.GrantValidity),
	}
	if err := s.grants.Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}

	if err := s.accessLog.Append(ctx, model.AccessLogEntry{
		Timestamp: now,
		ActorID:   req.AccessorID,
		ActorName: req.AccessorName,
		Action:    fmt.Sprintf("emergency access to patient %s: %s", card.PatientID, req.Reason),
		Emergency: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to record emergency access: %w", err)
	}

	return grant, nil
}

// ActiveGrants returns the patient's grants still inside their window.
func (s *Service) ActiveGrants(ctx context.Context, patientID string) ([]*model.EmergencyAccessGrant, error) {
	grants, err := s.grants.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := make([]*model.EmergencyAccessGrant, 0, len(grants))
	for _, grant := range grants {
		if !grant.Expired(now) {
			active = append(active, grant)
		}
	}
	return active, nil
}
