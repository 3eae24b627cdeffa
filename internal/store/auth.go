package store

import (
	"context"
	"sync"
	"time"

	"github.com/sweetnest/storefront/internal/api"
	"github.com/sweetnest/storefront/internal/constants"
	"github.com/sweetnest/storefront/internal/logger"
	"github.com/sweetnest/storefront/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// AuthState the whitelisted subset of auth state written to storage
type AuthState struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AuthStore owns the authenticated identity. User and token are set together
// and cleared together; IsAuthenticated is derived, never stored. The loading
// flag stays true until Initialize runs, and hydration happens synchronously
// before that, so route guards watching the flag never race the state.
type AuthStore struct {
	mu      sync.Mutex
	user    *models.User
	token   string
	loading bool

	api       *api.UserAPI
	persister Persister
}

// NewAuthStore creates the auth store, loading until Initialize
func NewAuthStore(userAPI *api.UserAPI, persister Persister) *AuthStore {
	return &AuthStore{api: userAPI, persister: persister, loading: true}
}

// Restore hydrates a persisted session. A token already past its expiry is
// dropped rather than restored (the signature check stays with the backend
// that issued it; only the exp claim is inspected here).
func (s *AuthStore) Restore(state AuthState) {
	if state.Token != "" && tokenExpired(state.Token) {
		logger.Infow("auth_restore_token_expired")
		s.persistCleared()
		return
	}
	s.mu.Lock()
	s.user = state.User
	s.token = state.Token
	s.mu.Unlock()
}

// Initialize marks hydration complete; state is already in place when the
// loading flag clears
func (s *AuthStore) Initialize() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Login exchanges credentials for a session
func (s *AuthStore) Login(ctx context.Context, email, password string) Result {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fail(api.Message(err, "Login failed"))
	}
	s.setSession(resp.User, resp.Token)
	return ok()
}

// Register creates an account and signs it in
func (s *AuthStore) Register(ctx context.Context, req api.RegisterRequest) Result {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return fail(api.Message(err, "Registration failed"))
	}
	s.setSession(resp.User, resp.Token)
	return ok()
}

// Logout clears user and token together
func (s *AuthStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	s.persistCleared()
}

// ForceLogout is the global 401 path: any unauthorized response clears the
// persisted session regardless of which store made the call
func (s *AuthStore) ForceLogout() {
	logger.Warnw("auth_force_logout")
	s.Logout()
}

// UpdateUser shallow-merges non-empty fields into the current user
func (s *AuthStore) UpdateUser(partial models.User) {
	s.mu.Lock()
	if s.user != nil {
		s.user.Merge(partial)
	}
	s.mu.Unlock()
	s.persist()
}

// IsAuthenticated is true exactly when a user is present
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// User returns a copy of the current user, nil when signed out
func (s *AuthStore) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAdmin reports whether the signed-in user carries the admin role
func (s *AuthStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.user.Role == constants.RoleAdmin
}

// Token returns the bearer token, empty when signed out. The shared API
// client uses this as its token source.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Loading reports whether initialization is still pending
func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) setSession(user models.User, token string) {
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
	s.persist()
}

func (s *AuthStore) persist() {
	if s.persister == nil {
		return
	}
	s.mu.Lock()
	state := AuthState{User: s.user, Token: s.token}
	s.mu.Unlock()
	s.persister.Persist(constants.StorageKeyAuth, state)
}

func (s *AuthStore) persistCleared() {
	if s.persister == nil {
		return
	}
	s.persister.Persist(constants.StorageKeyAuth, AuthState{})
}

// tokenExpired inspects the exp claim without verifying the signature
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// unparseable tokens are treated as stale
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
