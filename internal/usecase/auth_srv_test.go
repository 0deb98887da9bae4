package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session := r.sessions[parsed]
	if session == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	delete(r.sessions, parsed)
	return nil
}

func newAuthService(t *testing.T) (AuthService, *memStore, *fakeSessionRepo) {
	t.Helper()
	store := newMemStore()
	sessions := newFakeSessionRepo()
	repo := &repository.Repository{
		User:    &fakeUserRepo{store: store},
		Session: sessions,
	}
	return NewAuthService(repo, 24*time.Hour, zap.NewNop()), store, sessions
}

func registerReq() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username: "moviegoer",
		Email:    "moviegoer@example.com",
		Password: "s3cret-pass",
	}
}

func TestRegister(t *testing.T) {
	service, store, _ := newAuthService(t)

	user, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	assert.Equal(t, "moviegoer", user.Username)
	assert.Equal(t, string(entity.RoleCustomer), string(user.Role))

	// The stored hash is not the plaintext password
	stored := store.users[uuid.MustParse(user.ID)]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.True(t, stored.IsActive)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Username = "someone-else"
	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Email = "other@example.com"
	_, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	service, _, _ := newAuthService(t)

	req := registerReq()
	req.Password = "short"
	_, err := service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLogin(t *testing.T) {
	service, _, sessions := newAuthService(t)

	registered, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	login, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "moviegoer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, registered.ID, login.User.ID)
	assert.True(t, login.ExpiresAt.After(time.Now()))

	session, err := sessions.FindValidSession(context.Background(), login.Token)
	require.NoError(t, err)
	require.NotNil(t, session)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	service, _, _ := newAuthService(t)

	_, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, unknownErr := service.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pass",
	})
	_, wrongErr := service.Login(context.Background(), &request.LoginRequest{
		Email:    "moviegoer@example.com",
		Password: "wrong-pass",
	})

	require.ErrorIs(t, unknownErr, ErrUnauthorized)
	require.ErrorIs(t, wrongErr, ErrUnauthorized)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLogin_DisabledAccount(t *testing.T) {
	service, store, _ := newAuthService(t)

	user, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)
	store.users[uuid.MustParse(user.ID)].IsActive = false

	_, err = service.Login(context.Background(), &request.LoginRequest{
		Email:    "moviegoer@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	service, _, sessions := newAuthService(t)

	_, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	login, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "moviegoer@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), login.Token))

	session, err := sessions.FindValidSession(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGetProfile(t *testing.T) {
	service, _, _ := newAuthService(t)

	registered, err := service.Register(context.Background(), registerReq())
	require.NoError(t, err)

	profile, err := service.GetProfile(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Username, profile.Username)

	_, err = service.GetProfile(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}
