// Package session holds the authenticated user identity and bearer token,
// and drives the login/register/logout/restore lifecycle.
//
// The store has two reachable states: Anonymous (no user, no token) and
// Authenticated (both present); a loading flag covers the transient window
// while a login or register call is in flight. User and token are always set
// and cleared together, so the store can never be half-authenticated.
//
// The session is persisted to the durable medium when the caller asks to be
// remembered and to the ephemeral medium otherwise; restore reads durable
// first and falls back to ephemeral.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aGautrain/legeclair/internal/client/api"
	"github.com/aGautrain/legeclair/internal/client/models"
	"github.com/aGautrain/legeclair/internal/client/storage"
	"github.com/aGautrain/legeclair/internal/common"
	"github.com/aGautrain/legeclair/internal/logging"
)

// Store is the session state holder. Methods are safe for concurrent use;
// overlapping calls settle in resolution order (last write wins).
type Store struct {
	api       api.AuthAPI
	durable   storage.Backend
	ephemeral storage.Backend
	log       logging.Logger

	mu        sync.Mutex
	user      *models.User
	token     string
	loading   bool
	lastError string
}

// New builds a Store in the Anonymous state.
func New(client api.AuthAPI, durable, ephemeral storage.Backend, log logging.Logger) *Store {
	return &Store{api: client, durable: durable, ephemeral: ephemeral, log: log}
}

// Authenticated reports whether a user and token are both held.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// User returns a copy of the current user, or nil when anonymous.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Loading reports whether a login or register call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message recorded by the last failed operation, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError clears the error slot without other side effects.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// Login authenticates against the backend. On success the session is
// persisted to the durable medium when remember is true, the ephemeral one
// otherwise. Failures are recorded in the error slot and reported as false;
// the store stays Anonymous.
func (s *Store) Login(ctx context.Context, email, password string, remember bool) bool {
	s.begin()

	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.fail("login failed", err)
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		return false
	}

	medium := s.ephemeral
	if remember {
		medium = s.durable
	}
	return s.establish(ctx, res, medium, "login failed")
}

// Register creates an account and, on success, behaves like an implicit
// login persisted to the ephemeral medium only.
func (s *Store) Register(ctx context.Context, reg api.RegisterRequest) bool {
	s.begin()

	res, err := s.api.Register(ctx, reg)
	if err != nil {
		s.fail("registration failed", err)
		s.log.Warn(ctx, "registration failed", "email", reg.Email, "error", err)
		return false
	}
	return s.establish(ctx, res, s.ephemeral, "registration failed")
}

// establish stores the session in memory and persists it to the chosen
// medium. A persistence failure rolls the store back to Anonymous so memory
// and media never disagree about a remembered session.
func (s *Store) establish(ctx context.Context, res *api.AuthResult, medium storage.Backend, fallback string) bool {
	payload, err := json.Marshal(res.User)
	if err != nil {
		s.fail(fallback, err)
		return false
	}

	if err := medium.SetAll(ctx, map[string][]byte{
		storage.KeyUser:  payload,
		storage.KeyToken: []byte(res.Token),
	}); err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
		s.Logout(ctx)
		s.setError(fallback)
		return false
	}

	s.mu.Lock()
	user := res.User
	s.user = &user
	s.token = res.Token
	s.loading = false
	s.lastError = ""
	s.mu.Unlock()

	s.log.Info(ctx, "login successful", "email", res.User.Email)
	return true
}

// Logout unconditionally clears the in-memory session and both storage
// media, whichever one was used at login. It is idempotent and never fails:
// storage errors are logged and swallowed.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.lastError = ""
	s.loading = false
	s.mu.Unlock()

	if err := s.durable.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear durable session storage", "error", err)
	}
	if err := s.ephemeral.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear ephemeral session storage", "error", err)
	}
}

// Restore reconstructs the Authenticated state from persisted data on
// process start: durable medium first, ephemeral as fallback. Corrupt
// payloads and expired tokens discard the stored session entirely.
func (s *Store) Restore(ctx context.Context) {
	chain := storage.NewChain(s.durable, s.ephemeral)

	rawUser, err := chain.Get(ctx, storage.KeyUser)
	if err != nil {
		s.log.Error(ctx, "failed to read stored session", "error", err)
		return
	}
	rawToken, err := chain.Get(ctx, storage.KeyToken)
	if err != nil {
		s.log.Error(ctx, "failed to read stored session", "error", err)
		return
	}
	if rawUser == nil || rawToken == nil {
		return
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		err = fmt.Errorf("%w: %v", common.ErrCorruptData, err)
		s.log.Warn(ctx, "stored session is corrupt, discarding", "error", err)
		s.Logout(ctx)
		return
	}

	token := string(rawToken)
	if tokenExpired(token) {
		s.log.Info(ctx, "stored token expired, discarding session", "email", user.Email)
		s.Logout(ctx)
		return
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "email", user.Email)
}

// RefreshProfile re-reads the profile from the backend and re-persists the
// session wherever it currently lives.
func (s *Store) RefreshProfile(ctx context.Context) error {
	user, err := s.api.Profile(ctx)
	if err != nil {
		s.setError(messageOf("failed to refresh profile", err))
		return err
	}
	return s.replaceUser(ctx, user)
}

// UpdateProfile pushes a partial profile update and adopts the returned
// user. Same non-throwing contract as Login/Register.
func (s *Store) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) bool {
	s.begin()

	user, err := s.api.UpdateProfile(ctx, upd)
	if err != nil {
		s.fail("failed to update profile", err)
		return false
	}
	if err := s.replaceUser(ctx, user); err != nil {
		return false
	}
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	return true
}

// replaceUser swaps the in-memory user and rewrites the user key on whichever
// media currently hold one. The token is untouched.
func (s *Store) replaceUser(ctx context.Context, user *models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		s.setError("failed to update profile")
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	for _, medium := range []storage.Backend{s.durable, s.ephemeral} {
		existing, err := medium.Get(ctx, storage.KeyUser)
		if err != nil || existing == nil {
			continue
		}
		if err := medium.Set(ctx, storage.KeyUser, payload); err != nil {
			s.log.Error(ctx, "failed to re-persist user", "error", err)
		}
	}
	return nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

// fail records an error message, preferring the server-provided one, and
// drops the loading flag.
func (s *Store) fail(fallback string, err error) {
	s.mu.Lock()
	s.loading = false
	s.lastError = messageOf(fallback, err)
	s.mu.Unlock()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

func messageOf(fallback string, err error) string {
	if re, ok := api.AsRemote(err); ok && re.Message != "" {
		return re.Message
	}
	return fallback
}

// tokenExpired inspects the token's exp claim without verifying the
// signature (the client holds no key). Opaque tokens and tokens without an
// exp claim are kept; only a decodable, already-past expiry discards the
// session.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
