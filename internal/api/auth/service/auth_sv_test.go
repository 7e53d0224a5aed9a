package authService

import (
	"ProjectBudget/internal/api/auth"
	authRepository "ProjectBudget/internal/api/auth/repository"
	"ProjectBudget/internal/entity"
	"ProjectBudget/pkg/bcrypt"
	"ProjectBudget/pkg/utils"
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cryptobcrypt "golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byName  map[string]entity.User
	created []entity.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user entity.User) error {
	if _, ok := f.byName[user.Username]; ok {
		return auth.ErrUsernameDuplicated
	}
	f.byName[user.Username] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (entity.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, auth.ErrUserNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (entity.User, error) {
	u, ok := f.byName[username]
	if !ok {
		return entity.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := f.GetByID(ctx, id)
	return err == nil, nil
}

type fakeRepository struct {
	users *fakeUsers
}

func (f *fakeRepository) NewClient(bool) (authRepository.Client, error) {
	noop := func() error { return nil }
	return authRepository.Client{Users: f.users, Commit: noop, Rollback: noop}, nil
}

func newTestService(t *testing.T) (AuthService, *fakeUsers) {
	t.Helper()
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := &fakeUsers{byName: map[string]entity.User{}}
	svc := New(logger, &fakeRepository{users: users}, bcrypt.NewWithCost(cryptobcrypt.MinCost), utils.New(), time.Hour)
	return svc, users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, auth.RegisterRequest{Username: "kim", Password: "password1"})
	require.NoError(t, err)
	require.Len(t, users.created, 1)
	assert.Equal(t, id, users.created[0].ID)
	assert.NotEqual(t, "password1", users.created[0].Password)

	res, err := svc.Login(ctx, auth.LoginRequest{Username: "kim", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.InDelta(t, 60, res.ExpiresInMinutes, 1)
}

func TestRegisterDuplicated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterRequest{Username: "kim", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, auth.RegisterRequest{Username: "kim", Password: "password2"})
	assert.ErrorIs(t, err, auth.ErrUsernameDuplicated)
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterRequest{Username: "kim", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "kim", Password: "wrong-pass"})
	assert.ErrorIs(t, err, auth.ErrPasswordNotMatched)

	_, err = svc.Login(ctx, auth.LoginRequest{Username: "lee", Password: "password1"})
	assert.ErrorIs(t, err, auth.ErrPasswordNotMatched)
}
