package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plasma-social/plasma-backend/pkg/db"
	"github.com/plasma-social/plasma-backend/pkg/db/models"
	pkgerrors "github.com/plasma-social/plasma-backend/pkg/errors"
)

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	UserRepo *Repository
}

// Service exposes business rules for user management.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (UserDTO, error)
	GetUser(ctx context.Context, id uuid.UUID) (UserDTO, error)
	GetUserByUsername(ctx context.Context, username string) (UserDTO, error)
	ListUsers(ctx context.Context, cursor string, limit int) (UsersPageDTO, error)
}

type service struct {
	userRepo *Repository
}

// NewService builds a user service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	return &service{userRepo: params.UserRepo}, nil
}

// CreateUser registers a new user. Username and email are both unique;
// either collision surfaces as a conflict.
func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (UserDTO, error) {
	user := &models.User{
		Username:    strings.ToLower(strings.TrimSpace(input.Username)),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		DisplayName: strings.TrimSpace(input.DisplayName),
		Bio:         input.Bio,
		Avatar:      input.Avatar,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username or email already taken")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return toDTO(created), nil
}

// GetUser loads one user by ID.
func (s *service) GetUser(ctx context.Context, id uuid.UUID) (UserDTO, error) {
	if id == uuid.Nil {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return toDTO(user), nil
}

// GetUserByUsername loads one user by its handle.
func (s *service) GetUserByUsername(ctx context.Context, username string) (UserDTO, error) {
	if strings.TrimSpace(username) == "" {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return toDTO(user), nil
}

// ListUsers returns a newest-first page of users.
func (s *service) ListUsers(ctx context.Context, cursor string, limit int) (UsersPageDTO, error) {
	rows, nextCursor, err := s.userRepo.List(ctx, cursor, limit)
	if err != nil {
		return UsersPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	items := make([]UserDTO, 0, len(rows))
	for i := range rows {
		items = append(items, toDTO(&rows[i]))
	}
	return UsersPageDTO{Items: items, NextCursor: nextCursor}, nil
}
