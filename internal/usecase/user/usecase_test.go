package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domain "fiturae/internal/domain/user"
	repo "fiturae/internal/repository/interfaces"
)

// fakeUserRepo: минимальная in-memory реализация UserRepository для unit-тестов.
type fakeUserRepo struct {
	byID  map[string]*domain.User
	saves int
	err   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if email != "" && u.Email == email {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, u *domain.User) (*domain.User, error) {
	r.saves++
	for id, existing := range r.byID {
		if id != u.ID && u.Email != "" && existing.Email == u.Email {
			return nil, repo.ErrEmailExists
		}
	}
	r.byID[u.ID] = u
	return u, nil
}

func TestAddUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewService(users)

	u, err := svc.AddUser(context.Background(), Details{Name: "User1", Email: "e", ImageURL: "i"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "User1", u.Name)
	require.Equal(t, "e", u.Email)
	require.Equal(t, "i", u.ImageURL)

	got, err := svc.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestAddUser_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo(&domain.User{ID: "u1", Email: "e"})
	svc := NewService(users)

	_, err := svc.AddUser(context.Background(), Details{Name: "Other", Email: "e"})
	require.ErrorIs(t, err, repo.ErrEmailExists)
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.GetUserByID(context.Background(), "bogus")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByID_StoreFailure(t *testing.T) {
	users := newFakeUserRepo()
	users.err = errors.New("connection refused")
	svc := NewService(users)

	_, err := svc.GetUserByID(context.Background(), "u1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWithOAuth_ExistingByID(t *testing.T) {
	existing := &domain.User{ID: "583231", Name: "octocat"}
	users := newFakeUserRepo(existing)
	svc := NewService(users)

	u, err := svc.LoginWithOAuth(context.Background(), OAuthIdentity{ID: "583231", Login: "renamed"})
	require.NoError(t, err)
	require.Same(t, existing, u)
	require.Zero(t, users.saves)
}

func TestLoginWithOAuth_LinksByEmail(t *testing.T) {
	registered := &domain.User{ID: "uuid-1", Name: "Octo", Email: "octo@example.com"}
	users := newFakeUserRepo(registered)
	svc := NewService(users)

	u, err := svc.LoginWithOAuth(context.Background(), OAuthIdentity{ID: "583231", Login: "octocat", Email: "octo@example.com"})
	require.NoError(t, err)
	require.Equal(t, "uuid-1", u.ID)
	require.Zero(t, users.saves)
}

func TestLoginWithOAuth_CreatesOnFirstLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewService(users)

	u, err := svc.LoginWithOAuth(context.Background(), OAuthIdentity{ID: "583231", Login: "octocat", AvatarURL: "https://avatars/1"})
	require.NoError(t, err)
	require.Equal(t, &domain.User{ID: "583231", Name: "octocat", ImageURL: "https://avatars/1"}, u)
	require.Equal(t, 1, users.saves)
}

func TestLoginWithOAuth_EmptyID(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	_, err := svc.LoginWithOAuth(context.Background(), OAuthIdentity{Login: "octocat"})
	require.Error(t, err)
}
