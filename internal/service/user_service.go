package service

import (
	"context"
	"errors"
	"strings"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"
	"laundrybill/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
)

// --- DTOs ---

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	UserID   string `json:"userId"`
}

type ChangePasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// --- Interface ---

// UserService checks operator credentials. It issues no session or token.
type UserService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	EnsureUser(ctx context.Context, username, password string) (bool, error)
}

type userService struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
	cost      int
	// dummyHash is compared against when the username is unknown so both
	// failure paths spend the same bcrypt time.
	dummyHash []byte
}

// NewUserService creates a UserService hashing with the given bcrypt cost
// (bcrypt.DefaultCost when 0).
func NewUserService(repo repository.UserRepository, auditRepo repository.AuditRepository, cost int) UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &userService{repo: repo, auditRepo: auditRepo, cost: cost, dummyHash: dummy}
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return LoginResponse{}, err
	}

	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		Message:  "Login successful",
		Username: user.Username,
		UserID:   user.ID.String(),
	}, nil
}

func (s *userService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return err
	}

	user, err := s.authenticate(ctx, req.Username, req.CurrentPassword)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
	if err != nil {
		return apperror.NewPersistenceError("updating password", err)
	}
	user.Password = string(hash)
	if err := s.repo.UpdatePassword(ctx, user); err != nil {
		return storeError("User", "updating password", err)
	}

	if err := writeAudit(ctx, s.auditRepo, model.ActionChangePassword, user.ID.String(), user.Username, nil); err != nil {
		return apperror.NewPersistenceError("updating password", err)
	}
	return nil
}

// EnsureUser creates the account when missing. It reports whether it did.
func (s *userService) EnsureUser(ctx context.Context, username, password string) (bool, error) {
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, storeError("User", "fetching user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return false, err
	}
	err = s.repo.Create(ctx, &model.UserAccount{Username: username, Password: string(hash)})
	if errors.Is(err, repository.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, storeError("User", "creating user", err)
	}
	return true, nil
}

// authenticate collapses an unknown user and a wrong password into the same error.
func (s *userService) authenticate(ctx context.Context, username, password string) (*model.UserAccount, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperror.ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeError("User", "checking credentials", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	return user, nil
}
