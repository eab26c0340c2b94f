package identity

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopstream/backend/internal/domain/identity"
	"github.com/shopstream/backend/internal/domain/shared"
	"github.com/shopstream/backend/internal/integration"
)

// fakeUserRepository is an in-memory identity.UserRepository
type fakeUserRepository struct {
	users map[uuid.UUID]*identity.User
	err   error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepository) Save(_ context.Context, u *identity.User) error {
	if r.err != nil {
		return r.err
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, u *identity.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[u.ID]; !ok {
		return shared.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// fakePublisher records published integration events
type fakePublisher struct {
	published []integration.Event
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, event integration.Event) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Username: "jdoe",
		Email:    "JDoe@Example.com",
		Password: "correct-horse",
	}
}

func TestUserService_Register(t *testing.T) {
	t.Run("creates the account and announces the registration", func(t *testing.T) {
		repo := newFakeUserRepository()
		publisher := &fakePublisher{}
		svc := NewUserService(repo, publisher, zap.NewNop())

		resp, err := svc.Register(context.Background(), registerRequest())

		require.NoError(t, err)
		assert.Equal(t, "jdoe", resp.Username)
		assert.Equal(t, "jdoe@example.com", resp.Email)
		assert.False(t, resp.IsAdmin)

		require.Len(t, publisher.published, 1)
		event, ok := publisher.published[0].(*integration.UserRegisteredEvent)
		require.True(t, ok)
		assert.Equal(t, integration.EventTypeUserRegistered, event.EventType())
		assert.Equal(t, resp.ID.String(), event.UserID)
		assert.Equal(t, "jdoe", event.Username)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())

		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		req := registerRequest()
		req.Email = "other@example.com"
		_, err = svc.Register(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())

		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		req := registerRequest()
		req.Username = "other"
		_, err = svc.Register(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())

		req := registerRequest()
		req.Password = "short"
		_, err := svc.Register(context.Background(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})

	t.Run("a publish failure does not fail the registration", func(t *testing.T) {
		repo := newFakeUserRepository()
		svc := NewUserService(repo, &fakePublisher{err: assert.AnError}, zap.NewNop())

		_, err := svc.Register(context.Background(), registerRequest())

		require.NoError(t, err)
		assert.Len(t, repo.users, 1)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("changes the profile and announces the update", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewUserService(newFakeUserRepository(), publisher, zap.NewNop())

		created, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		resp, err := svc.UpdateProfile(context.Background(), created.ID, UpdateProfileRequest{
			Username: "jdoe2",
			Email:    "jdoe2@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "jdoe2", resp.Username)
		assert.Equal(t, "jdoe2@example.com", resp.Email)

		require.Len(t, publisher.published, 2)
		event, ok := publisher.published[1].(*integration.UserUpdatedEvent)
		require.True(t, ok)
		assert.Equal(t, "jdoe2", event.Username)
	})

	t.Run("keeping your own username is not a conflict", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())

		created, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		_, err = svc.UpdateProfile(context.Background(), created.ID, UpdateProfileRequest{
			Username: "jdoe",
			Email:    "jdoe@example.com",
		})
		assert.NoError(t, err)
	})

	t.Run("another account's username is a conflict", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())

		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		other, err := svc.Register(context.Background(), RegisterRequest{
			Username: "other",
			Email:    "other@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		_, err = svc.UpdateProfile(context.Background(), other.ID, UpdateProfileRequest{
			Username: "jdoe",
			Email:    "other@example.com",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("removes the account and announces the removal", func(t *testing.T) {
		repo := newFakeUserRepository()
		publisher := &fakePublisher{}
		svc := NewUserService(repo, publisher, zap.NewNop())

		created, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), created.ID))
		assert.Empty(t, repo.users)

		require.Len(t, publisher.published, 2)
		event, ok := publisher.published[1].(*integration.UserDeletedEvent)
		require.True(t, ok)
		assert.Equal(t, created.ID.String(), event.UserID)
	})

	t.Run("missing account yields not found", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())
		assert.Equal(t, shared.ErrNotFound, svc.Delete(context.Background(), uuid.New()))
	})
}

func TestUserService_AdminUpsert(t *testing.T) {
	t.Run("creates an unknown account with the admin flag", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewUserService(newFakeUserRepository(), publisher, zap.NewNop())

		resp, err := svc.AdminUpsert(context.Background(), AdminUpsertRequest{
			Username: "root",
			Email:    "root@example.com",
			Password: "correct-horse",
			IsAdmin:  true,
		})

		require.NoError(t, err)
		assert.True(t, resp.IsAdmin)

		require.Len(t, publisher.published, 1)
		event, ok := publisher.published[0].(*integration.AdminUserUpsertedEvent)
		require.True(t, ok)
		assert.True(t, event.IsAdmin)
	})

	t.Run("updates an existing account in place", func(t *testing.T) {
		publisher := &fakePublisher{}
		svc := NewUserService(newFakeUserRepository(), publisher, zap.NewNop())

		created, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		resp, err := svc.AdminUpsert(context.Background(), AdminUpsertRequest{
			Username: "jdoe",
			Email:    "jdoe-new@example.com",
			IsAdmin:  true,
		})

		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, "jdoe-new@example.com", resp.Email)
		assert.True(t, resp.IsAdmin)
	})

	t.Run("creating without a password is rejected", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())

		_, err := svc.AdminUpsert(context.Background(), AdminUpsertRequest{
			Username: "root",
			Email:    "root@example.com",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	svc := NewUserService(newFakeUserRepository(), &fakePublisher{}, zap.NewNop())

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	t.Run("valid credentials return the account", func(t *testing.T) {
		resp, err := svc.Authenticate(context.Background(), AuthenticateRequest{
			Username: "jdoe",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, wrongPassword := svc.Authenticate(context.Background(), AuthenticateRequest{
			Username: "jdoe",
			Password: "wrong",
		})
		_, unknownUser := svc.Authenticate(context.Background(), AuthenticateRequest{
			Username: "nobody",
			Password: "correct-horse",
		})

		assert.Equal(t, shared.ErrInvalidCredentials, wrongPassword)
		assert.Equal(t, shared.ErrInvalidCredentials, unknownUser)
	})
}
