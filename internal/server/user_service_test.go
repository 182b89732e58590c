package server

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/jobmatch/internal/config"
	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	users map[uuid.UUID]*db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	for _, u := range f.users {
		if u.Email == email {
			return uuid.Nil, fmt.Errorf("user with email %s: %w", email, db.ErrDuplicate)
		}
	}
	id := uuid.New()
	f.users[id] = &db.User{ID: id, Name: name, Email: email}
	return id, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	u, _ := f.GetUserByEmail(context.Background(), email)
	return u != nil, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func testUserService() (*UserService, *fakeUserStore) {
	store := newFakeUserStore()
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	return NewUserService(store, passwordConfig), store
}

func TestRegisterCreatesUser(t *testing.T) {
	service, store := testUserService()

	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name:     "Jordan",
		Email:    "jordan@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", user.Email)
	assert.True(t, user.PasswordSet)

	stored := store.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := testUserService()
	req := &types.CreateUserRequest{Name: "Jordan", Email: "jordan@example.com", Password: "password123"}

	_, err := service.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Register(context.Background(), req)
	var exists *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "jordan@example.com", exists.Email)
}

func TestLoginSuccess(t *testing.T) {
	service, _ := testUserService()
	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Jordan", Email: "jordan@example.com", Password: "password123",
	})
	require.NoError(t, err)

	user, err := service.Login(context.Background(), &types.LoginRequest{
		Email: "jordan@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", user.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	service, _ := testUserService()
	_, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Jordan", Email: "jordan@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &types.LoginRequest{
		Email: "jordan@example.com", Password: "wrong-password",
	})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := testUserService()

	_, err := service.Login(context.Background(), &types.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	var invalid *ErrInvalidCredentials
	assert.ErrorAs(t, err, &invalid)
}

func TestUpdatePassword(t *testing.T) {
	service, _ := testUserService()
	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Jordan", Email: "jordan@example.com", Password: "password123",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(context.Background(), user.ID, "password123", "newpassword456")
	require.NoError(t, err)

	_, err = service.Login(context.Background(), &types.LoginRequest{
		Email: "jordan@example.com", Password: "newpassword456",
	})
	assert.NoError(t, err)

	_, err = service.Login(context.Background(), &types.LoginRequest{
		Email: "jordan@example.com", Password: "password123",
	})
	assert.Error(t, err)
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	service, _ := testUserService()
	user, err := service.Register(context.Background(), &types.CreateUserRequest{
		Name: "Jordan", Email: "jordan@example.com", Password: "password123",
	})
	require.NoError(t, err)

	err = service.UpdatePassword(context.Background(), user.ID, "wrong", "newpassword456")
	var mismatch *ErrPasswordMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestUpdatePasswordUnknownUser(t *testing.T) {
	service, _ := testUserService()
	err := service.UpdatePassword(context.Background(), uuid.New(), "password123", "newpassword456")
	var notFound *ErrUserNotFound
	assert.ErrorAs(t, err, &notFound)
}
