package review

import (
	"context"
	"fmt"
	"time"

	"github.com/healthkey/healthkey-api/internal/email"
	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/pkg/apperror"
	"github.com/healthkey/healthkey-api/pkg/logger"
)

// Service handles the admin review queue for doctor and hospital
// signups.
type Service struct {
	users     repository.UserRepository
	doctors   repository.DoctorRepository
	hospitals repository.HospitalRepository
	accessLog repository.AccessLogRepository
	emailSvc  email.Service
	log       *logger.Logger
}

func NewService(
	users repository.UserRepository,
	doctors repository.DoctorRepository,
	hospitals repository.HospitalRepository,
	accessLog repository.AccessLogRepository,
	emailSvc email.Service,
	log *logger.Logger,
) *Service {
	return &Service{
		users:     users,
		doctors:   doctors,
		hospitals: hospitals,
		accessLog: accessLog,
		emailSvc:  emailSvc,
		log:       log,
	}
}

// ListPending returns pending signups for the given role.
func (s *Service) ListPending(ctx context.Context, role string) ([]*model.User, error) {
	if role != model.RoleDoctor && role != model.RoleHospital {
		return nil, apperror.BadRequest(fmt.Sprintf("role %q has no review queue", role), nil)
	}
	return s.users.ListByRoleAndStatus(ctx, role, model.UserStatusPending)
}

// Review approves or rejects a pending doctor/hospital login and flips
// the profile's approval status to match. The notification email is best
// effort.
func (s *Service) Review(ctx context.Context, adminID, userID string, approve bool) (*model.User, error) {
	candidate, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if candidate.Role != model.RoleDoctor && candidate.Role != model.RoleHospital {
		return nil, apperror.BadRequest(fmt.Sprintf("role %q has no review queue", candidate.Role), nil)
	}

	verdict := model.ApprovalRejected
	status := model.UserStatusRejected
	if approve {
		verdict = model.ApprovalApproved
		status = model.UserStatusActive
	}

	// The pending check and the status flip happen in one mutation, so
	// only one of two racing reviews can claim the user.
	var user *model.User
	err = s.users.Mutate(ctx, userID, func(u *model.User) error {
		if u.Status != model.UserStatusPending {
			return apperror.Conflict("user is not pending review", nil)
		}
		u.Status = status
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	var name, to string
	switch user.Role {
	case model.RoleDoctor:
		err = s.doctors.Mutate(ctx, user.DoctorID, func(doctor *model.Doctor) error {
			doctor.ApprovalStatus = verdict
			name, to = doctor.Name, doctor.Email
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update doctor profile: %w", err)
		}
	case model.RoleHospital:
		err = s.hospitals.Mutate(ctx, user.HospitalID, func(hospital *model.Hospital) error {
			hospital.ApprovalStatus = verdict
			name, to = hospital.Name, hospital.Email
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update hospital profile: %w", err)
		}
	}

	if to != "" {
		if err := s.emailSvc.SendApprovalResult(ctx, to, name, user.Role, approve); err != nil {
			s.log.Error(err, "failed to send approval email", "user_id", user.ID)
		}
	}

	_ = s.accessLog.Append(ctx, model.AccessLogEntry{
		Timestamp: time.Now(),
		ActorID:   adminID,
		Action:    fmt.Sprintf("%s %s %s", verdict, user.Role, user.ID),
	})

	return user, nil
}
