package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
)

const dateLayout = "2006-01-02"

// Everything here is recomputed from full scans, which is fine at demo
// data volumes; the cache keeps dashboard polling from hammering the
// store.
type Service struct {
	hospitals     repository.HospitalRepository
	doctors       repository.DoctorRepository
	consultations repository.ConsultationRepository
	grants        repository.EmergencyRepository
	snapshots     repository.AnalyticsRepository
	cache         *cache.Cache
}

func NewService(
	hospitals repository.HospitalRepository,
	doctors repository.DoctorRepository,
	consultations repository.ConsultationRepository,
	grants repository.EmergencyRepository,
	snapshots repository.AnalyticsRepository,
	ttl time.Duration,
) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{
		hospitals:     hospitals,
		doctors:       doctors,
		consultations: consultations,
		grants:        grants,
		snapshots:     snapshots,
		cache:         cache.New(ttl, 2*ttl),
	}
}

// HospitalStats aggregates the hospital's consultations for the current
// calendar day. Same-day matching is a string prefix on the ISO
// timestamp. Revenue is completed-today times the mean fee across the
// hospital's doctors.
func (s *Service) HospitalStats(ctx context.Context, hospitalID string) (*model.HospitalStats, error) {
	key := "hospital_stats:" + hospitalID
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.HospitalStats), nil
	}

	if _, err := s.hospitals.Get(ctx, hospitalID); err != nil {
		return nil, err
	}

	consultations, err := s.consultations.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	doctors, err := s.doctors.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	today := time.Now().Format(dateLayout)
	stats := &model.HospitalStats{
		HospitalID:  hospitalID,
		Date:        today,
		DoctorCount: len(doctors),
	}

	for _, c := range consultations {
		stats.TotalConsultations++
		if c.Status == model.ConsultationWaiting {
			stats.WaitingNow++
		}
		if completedOn(c, today) {
			stats.CompletedToday++
		}
	}

	var feeTotal float64
	for _, d := range doctors {
		feeTotal += d.ConsultationFee
	}
	if len(doctors) > 0 {
		stats.AverageFee = feeTotal / float64(len(doctors))
	}
	stats.ProjectedRevenue = float64(stats.CompletedToday) * stats.AverageFee

	s.cache.SetDefault(key, stats)
	return stats, nil
}

// Refresh rewrites the stored daily snapshot from a full scan.
func (s *Service) Refresh(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	consultations, err := s.consultations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}

	today := time.Now().Format(dateLayout)
	snapshot := &model.AnalyticsSnapshot{Date: today}
	for _, c := range consultations {
		snapshot.TotalConsultations++
		if c.Status == model.ConsultationWaiting {
			snapshot.WaitingNow++
		}
		if completedOn(c, today) {
			snapshot.CompletedToday++
		}
	}

	hospitals, err := s.hospitals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	for _, h := range hospitals {
		grantsForHospital, err := s.grantsToday(ctx, h, today)
		if err != nil {
			return nil, err
		}
		snapshot.EmergencyGrantsToday += grantsForHospital
	}

	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snapshot, nil
}

// Snapshot returns the last stored roll-up.
func (s *Service) Snapshot(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	return s.snapshots.Get(ctx)
}

func (s *Service) grantsToday(ctx context.Context, hospital *model.Hospital, today string) (int, error) {
	count := 0
	for _, patientID := range hospital.CurrentPatients {
		grants, err := s.grants.ListByPatient(ctx, patientID)
		if err != nil {
			return 0, fmt.Errorf("failed to list grants: %w", err)
		}
		for _, g := range grants {
			if g.CreatedAt.Format(dateLayout) == today {
				count++
			}
		}
	}
	return count, nil
}

func completedOn(c *model.Consultation, isoDate string) bool {
	if c.Status != model.ConsultationCompleted || c.CompletedAt == nil {
		return false
	}
	return c.CompletedAt.Format(time.RFC3339)[:len(isoDate)] == isoDate
}
