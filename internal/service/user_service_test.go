package service

import (
	"context"
	"testing"

	dom "github.com/1810649011/my-web-end/internal/domain"
	"github.com/1810649011/my-web-end/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo stores users in a map keyed by email.
type fakeUserRepo struct {
	users map[string]dom.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]dom.User{}}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := f.users[email]
	if !ok {
		return dom.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string) (dom.User, error) {
	if _, ok := f.users[email]; ok {
		return dom.User{}, repo.ErrEmailTaken
	}
	u := dom.User{ID: "u1", Email: email, PasswordHash: passwordHash}
	f.users[email] = u
	return u, nil
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), "Alice@Example.com ", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)

	got, err := svc.ValidateCredentials(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.ValidateCredentials(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@b.c", "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "a@b.c", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateCredentialsUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.ValidateCredentials(context.Background(), "ghost@b.c", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
