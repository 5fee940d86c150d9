package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/repository/document"
	"github.com/healthkey/healthkey-api/internal/store/memory"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type fixture struct {
	svc           *Service
	consultations repository.ConsultationRepository
	grants        repository.EmergencyRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New()
	hospitals := document.NewHospitalRepository(s)
	doctors := document.NewDoctorRepository(s)
	f := &fixture{
		consultations: document.NewConsultationRepository(s),
		grants:        document.NewEmergencyRepository(s),
	}
	f.svc = NewService(hospitals, doctors, f.consultations, f.grants,
		document.NewAnalyticsRepository(s), time.Minute)

	ctx := context.Background()
	require.NoError(t, hospitals.Create(ctx, &model.Hospital{
		Base:            model.Base{ID: "HSP1"},
		Name:            "City Care",
		CurrentPatients: []string{"PAT1"},
	}))
	require.NoError(t, doctors.Create(ctx, &model.Doctor{
		Base:            model.Base{ID: "DOC1"},
		HospitalID:      "HSP1",
		ConsultationFee: 400,
	}))
	require.NoError(t, doctors.Create(ctx, &model.Doctor{
		Base:            model.Base{ID: "DOC2"},
		HospitalID:      "HSP1",
		ConsultationFee: 600,
	}))
	return f
}

func (f *fixture) addConsultation(t *testing.T, id, status string, completedAt *time.Time) {
	t.Helper()
	require.NoError(t, f.consultations.Create(context.Background(), &model.Consultation{
		Base:        model.Base{ID: id},
		PatientID:   "PAT1",
		DoctorID:    "DOC1",
		HospitalID:  "HSP1",
		Status:      status,
		CompletedAt: completedAt,
	}))
}

func TestHospitalStats(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	f.addConsultation(t, "CON1", model.ConsultationWaiting, nil)
	f.addConsultation(t, "CON2", model.ConsultationCompleted, &now)
	f.addConsultation(t, "CON3", model.ConsultationCompleted, &now)
	f.addConsultation(t, "CON4", model.ConsultationCompleted, &yesterday)

	stats, err := f.svc.HospitalStats(context.Background(), "HSP1")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.DoctorCount)
	assert.Equal(t, 4, stats.TotalConsultations)
	assert.Equal(t, 1, stats.WaitingNow)
	assert.Equal(t, 2, stats.CompletedToday)
	assert.InDelta(t, 500.0, stats.AverageFee, 0.001)
	assert.InDelta(t, 1000.0, stats.ProjectedRevenue, 0.001)
}

func TestHospitalStatsUnknownHospital(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.HospitalStats(context.Background(), "HSP404")
	assert.True(t, apperror.IsNotFound(err))
}

func TestHospitalStatsCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.HospitalStats(ctx, "HSP1")
	require.NoError(t, err)
	assert.Equal(t, 0, first.TotalConsultations)

	// Written after the first read; the cached value is still served.
	f.addConsultation(t, "CON1", model.ConsultationWaiting, nil)

	second, err := f.svc.HospitalStats(ctx, "HSP1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.TotalConsultations)
}

func TestRefreshWritesSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	f.addConsultation(t, "CON1", model.ConsultationWaiting, nil)
	f.addConsultation(t, "CON2", model.ConsultationCompleted, &now)
	require.NoError(t, f.grants.Create(ctx, &model.EmergencyAccessGrant{
		Base:      model.Base{ID: "EMG1"},
		PatientID: "PAT1",
		Status:    "active",
		ExpiresAt: now.Add(2 * time.Hour),
	}))

	snapshot, err := f.svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalConsultations)
	assert.Equal(t, 1, snapshot.WaitingNow)
	assert.Equal(t, 1, snapshot.CompletedToday)
	assert.Equal(t, 1, snapshot.EmergencyGrantsToday)

	stored, err := f.svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.Date, stored.Date)
	assert.Equal(t, 2, stored.TotalConsultations)
}

func TestSnapshotBeforeRefresh(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Snapshot(context.Background())
	assert.True(t, apperror.IsNotFound(err))
}
