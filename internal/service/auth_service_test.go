package service

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spellathon/internal/models"
	"spellathon/internal/security"
	"spellathon/internal/validation"
)

type fakeUserStore struct {
	users     map[string]*models.User
	commits   int
	failAdd   error
	failFetch error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (s *fakeUserStore) Add(user *models.User) (bool, error) {
	if s.failAdd != nil {
		return false, s.failAdd
	}
	if _, ok := s.users[user.Username]; ok {
		return false, nil
	}
	s.users[user.Username] = user
	return true, nil
}

func (s *fakeUserStore) Retrieve(username string) (*models.User, error) {
	if s.failFetch != nil {
		return nil, s.failFetch
	}
	return s.users[username], nil
}

func (s *fakeUserStore) Commit() error {
	s.commits++
	return nil
}

func newTestAuthService(t *testing.T, store UserStore) *AuthService {
	t.Helper()
	adminFile := filepath.Join(t.TempDir(), ".config")
	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	return NewAuthService(store, tokens, adminFile, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)

	user, err := svc.Register("anna", "Anna Jones", "password1", "password1", "2014-03-01", "")
	require.NoError(t, err)
	assert.Equal(t, "anna", user.Username)
	assert.NotEqual(t, "password1", user.PasswordHash)
	assert.Equal(t, 1, store.commits)

	got, err := svc.Login("anna", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)

	_, err := svc.Register("anna", "Anna Jones", "password1", "password1", "", "")
	require.NoError(t, err)

	_, err = svc.Register("anna", "Other Anna", "password2", "password2", "", "")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserStore())

	tests := []struct {
		name     string
		username string
		realName string
		password string
		confirm  string
		birthday string
	}{
		{"empty username", "", "Anna", "password1", "password1", ""},
		{"short password", "anna", "Anna", "pw", "pw", ""},
		{"mismatched confirmation", "anna", "Anna", "password1", "password2", ""},
		{"bad birthday", "anna", "Anna", "password1", "password1", "03/01/2014"},
		{"delimiter in username", "an|na", "Anna", "password1", "password1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.username, tt.realName, tt.password, tt.confirm, tt.birthday, "")
			var verr validation.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLoginRejectsWrongPasswordAndUnknownUser(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)

	_, err := svc.Register("anna", "Anna Jones", "password1", "password1", "", "")
	require.NoError(t, err)

	_, err = svc.Login("anna", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStoreFailure(t *testing.T) {
	store := newFakeUserStore()
	store.failFetch = errors.New("database gone")
	svc := newTestAuthService(t, store)

	_, err := svc.Login("anna", "password1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLifecycle(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)

	configured, err := svc.AdminConfigured()
	require.NoError(t, err)
	assert.False(t, configured)

	_, err = svc.CreateAdmin("teacher", "Ms Smith", "password1", "password1", "")
	require.NoError(t, err)

	configured, err = svc.AdminConfigured()
	require.NoError(t, err)
	assert.True(t, configured)

	token, err := svc.Authorise("teacher", "password1")
	require.NoError(t, err)

	claims, err := svc.VerifyAdmin(token)
	require.NoError(t, err)
	assert.Equal(t, "teacher", claims.Username)
	assert.True(t, claims.Admin)
}

func TestAuthoriseRejectsNonAdmin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)

	_, err := svc.CreateAdmin("teacher", "Ms Smith", "password1", "password1", "")
	require.NoError(t, err)
	_, err = svc.Register("anna", "Anna Jones", "password1", "password1", "", "")
	require.NoError(t, err)

	_, err = svc.Authorise("anna", "password1")
	assert.ErrorIs(t, err, ErrNotAdministrator)
}

func TestAuthoriseRejectsWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(t, store)

	_, err := svc.CreateAdmin("teacher", "Ms Smith", "password1", "password1", "")
	require.NoError(t, err)

	_, err = svc.Authorise("teacher", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyAdminRejectsNonAdminToken(t *testing.T) {
	store := newFakeUserStore()
	adminFile := filepath.Join(t.TempDir(), ".config")
	tokens := security.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAuthService(store, tokens, adminFile, zap.NewNop())

	token, err := tokens.Issue("anna", false)
	require.NoError(t, err)

	_, err = svc.VerifyAdmin(token)
	assert.ErrorIs(t, err, ErrNotAdministrator)
}
