package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/pkg/apperror"
	"github.com/healthkey/healthkey-api/pkg/auth"
	"github.com/healthkey/healthkey-api/pkg/idgen"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotActive   = errors.New("account is not active yet")
)

type Service struct {
	users     repository.UserRepository
	patients  repository.PatientRepository
	doctors   repository.DoctorRepository
	hospitals repository.HospitalRepository
	nfcCards  repository.NfcCardRepository
	accessLog repository.AccessLogRepository
	jwtSvc    auth.JWTService
}

func NewService(
	users repository.UserRepository,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	hospitals repository.HospitalRepository,
	nfcCards repository.NfcCardRepository,
	accessLog repository.AccessLogRepository,
	jwtSvc auth.JWTService,
) *Service {
	return &Service{
		users:     users,
		patients:  patients,
		doctors:   doctors,
		hospitals: hospitals,
		nfcCards:  nfcCards,
		accessLog: accessLog,
		jwtSvc:    jwtSvc,
	}
}

// Login matches identifier against email, or mobile for patients. The
// stored password is compared exactly; the demo store holds fixture
// credentials, not hashes (cmd/authd is the hashed path).
func (s *Service) Login(ctx context.Context, identifier, password, role string) (*model.LoginResponse, error) {
	user, err := s.users.GetByLogin(ctx, identifier, role)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Password != password {
		return nil, ErrInvalidCredentials
	}

	if user.Role != model.RoleAdmin && user.Status != model.UserStatusActive {
		return nil, ErrAccountNotActive
	}

	token, err := s.jwtSvc.GenerateToken(user.ID, user.Role, s.profileID(user))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.accessLog.Append(ctx, model.AccessLogEntry{
		Timestamp: time.Now(),
		ActorID:   user.ID,
		Action:    fmt.Sprintf("%s logged in", user.Role),
	}); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

// Register creates the login plus the role profile. Patients come out
// active with a freshly linked NFC card; doctors and hospitals start
// pending until an admin reviews them. The source app never checked for
// duplicate email/mobile and neither do we.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResult, error) {
	switch req.Role {
	case model.RolePatient:
		return s.registerPatient(ctx, req)
	case model.RoleDoctor:
		return s.registerDoctor(ctx, req)
	case model.RoleHospital:
		return s.registerHospital(ctx, req)
	default:
		return nil, apperror.BadRequest(fmt.Sprintf("cannot register role %q", req.Role), nil)
	}
}

func (s *Service) registerPatient(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResult, error) {
	patient := &model.Patient{
		Base:       model.Base{ID: idgen.New("PAT")},
		Name:       req.Name,
		Age:        req.Age,
		Gender:     req.Gender,
		BloodGroup: req.BloodGroup,
		Mobile:     req.Mobile,
		Email:      req.Email,
		Address:    req.Address,
	}

	card := &model.NfcCard{
		Base:      model.Base{ID: idgen.New("NFC")},
		PatientID: patient.ID,
		Status:    model.NfcCardActive,
	}
	patient.NfcCardID = card.ID

	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	if err := s.nfcCards.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create nfc card: %w", err)
	}

	user := &model.User{
		Base:      model.Base{ID: idgen.New("USR")},
		Email:     req.Email,
		Mobile:    req.Mobile,
		Password:  req.Password,
		Role:      model.RolePatient,
		Status:    model.UserStatusActive,
		PatientID: patient.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logRegistration(ctx, user)
	return &model.RegisterResult{User: user, Patient: patient, NfcCard: card}, nil
}

func (s *Service) registerDoctor(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResult, error) {
	doctor := &model.Doctor{
		Base:            model.Base{ID: idgen.New("DOC")},
		Name:            req.Name,
		Email:           req.Email,
		Specialization:  req.Specialization,
		ConsultationFee: req.ConsultationFee,
		HospitalID:      req.HospitalID,
		ApprovalStatus:  model.ApprovalPending,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	user := &model.User{
		Base:     model.Base{ID: idgen.New("USR")},
		Email:    req.Email,
		Password: req.Password,
		Role:     model.RoleDoctor,
		Status:   model.UserStatusPending,
		DoctorID: doctor.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logRegistration(ctx, user)
	return &model.RegisterResult{User: user, Doctor: doctor}, nil
}

func (s *Service) registerHospital(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResult, error) {
	hospital := &model.Hospital{
		Base:           model.Base{ID: idgen.New("HSP")},
		Name:           req.Name,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		Phone:          req.Phone,
		ApprovalStatus: model.ApprovalPending,
	}
	if err := s.hospitals.Create(ctx, hospital); err != nil {
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}

	user := &model.User{
		Base:       model.Base{ID: idgen.New("USR")},
		Email:      req.Email,
		Password:   req.Password,
		Role:       model.RoleHospital,
		Status:     model.UserStatusPending,
		HospitalID: hospital.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logRegistration(ctx, user)
	return &model.RegisterResult{User: user, Hospital: hospital}, nil
}

func (s *Service) logRegistration(ctx context.Context, user *model.User) {
	// Registration already succeeded; a failed log entry is not worth
	// failing the signup over.
	_ = s.accessLog.Append(ctx, model.AccessLogEntry{
		Timestamp: time.Now(),
		ActorID:   user.ID,
		Action:    fmt.Sprintf("%s registered", user.Role),
	})
}

func (s *Service) profileID(user *model.User) string {
	switch user.Role {
	case model.RolePatient:
		return user.PatientID
	case model.RoleDoctor:
		return user.DoctorID
	case model.RoleHospital:
		return user.HospitalID
	default:
		return ""
	}
}
