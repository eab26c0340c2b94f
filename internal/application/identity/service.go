// Package identity contains the identity service's application layer.
// Account writes are announced to the broker so downstream services can
// maintain customer replicas without calling back into identity.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/identity"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/infrastructure/telemetry"
	"github.com/shopstream/backend/internal/integration"
)

// UserService handles account commands and queries
type UserService struct {
	repo      identity.UserRepository
	publisher integration.Publisher
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo identity.UserRepository, publisher integration.Publisher, logger *zap.Logger) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Register creates a new account and announces the registration
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "identity", "register",
		telemetry.WithAttribute(telemetry.SpanAttrUsername, req.Username),
	)
	defer span.End()

	if err := s.ensureAvailable(ctx, req.Username, req.Email, uuid.Nil); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	user, err := identity.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.repo.Save(ctx, user); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announce(ctx, integration.NewUserRegisteredEvent(user.ID.String(), user.Username, user.Email))

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes an account's username and email and announces it
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureAvailable(ctx, req.Username, req.Email, userID); err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.Username, req.Email); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.announce(ctx, integration.NewUserUpdatedEvent(user.ID.String(), user.Username, user.Email))

	s.logger.Info("user profile updated", zap.String("user_id", user.ID.String()))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete removes an account and announces the removal
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	s.announce(ctx, integration.NewUserDeletedEvent(userID.String()))

	s.logger.Info("user deleted", zap.String("user_id", userID.String()))
	return nil
}

// AdminUpsert creates the account if the username is unknown, otherwise
// updates its email and admin flag. A create requires a password; an
// update ignores the password field, credentials are not changed here.
func (s *UserService) AdminUpsert(ctx context.Context, req AdminUpsertRequest) (*UserResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "identity", "admin_upsert",
		telemetry.WithAttribute(telemetry.SpanAttrUsername, req.Username),
	)
	defer span.End()

	user, err := s.repo.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if err := user.UpdateProfile(req.Username, req.Email); err != nil {
			return nil, err
		}
		user.SetAdmin(req.IsAdmin)
		if err := s.repo.Update(ctx, user); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewUser(req.Username, req.Email, req.Password)
		if err != nil {
			return nil, err
		}
		user.SetAdmin(req.IsAdmin)
		if err := s.repo.Save(ctx, user); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	default:
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announce(ctx, integration.NewAdminUserUpsertedEvent(user.ID.String(), user.Username, user.Email, user.IsAdmin))

	s.logger.Info("admin user upsert applied",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_admin", user.IsAdmin),
	)

	resp := ToUserResponse(user)
	return &resp, nil
}

// Authenticate verifies the credentials and returns the account.
// An unknown username and a wrong password both yield
// shared.ErrInvalidCredentials, the caller cannot tell them apart.
func (s *UserService) Authenticate(ctx context.Context, req AuthenticateRequest) (*UserResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, shared.ErrInvalidCredentials
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// GetByID returns a single account
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ensureAvailable checks that neither the username nor the email is taken
// by a different account
func (s *UserService) ensureAvailable(ctx context.Context, username, email string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	existing, err = s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	return nil
}

// announce publishes an identity integration event.
// A publish failure is logged, not surfaced: the account write already
// committed.
func (s *UserService) announce(ctx context.Context, event integration.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish identity event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}
