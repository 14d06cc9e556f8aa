package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delphine/shop/internal/domain"
)

const identityKey = "delphine-user"

// Identity maps normalized emails to credentials and holds the single current
// session. The registry entry and the session copy of the logged-in user must
// never diverge; every profile mutation updates both.
type Identity struct {
	mu    sync.RWMutex
	state Persister

	users   map[string]domain.Credential
	current *domain.User
}

func NewIdentity(state Persister) *Identity {
	return &Identity{state: state, users: map[string]domain.Credential{}}
}

type identitySnapshot struct {
	Users           map[string]domain.Credential `json:"users"`
	User            *domain.User                 `json:"user"`
	IsAuthenticated bool                         `json:"isAuthenticated"`
}

func (s *Identity) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var snap identitySnapshot
	if rehydrate(ctx, s.state, identityKey, &snap) {
		if snap.Users != nil {
			s.users = snap.Users
		}
		if snap.IsAuthenticated {
			s.current = snap.User
		}
	}
}

// Seed adds registry entries that are not present yet, leaving existing
// accounts alone.
func (s *Identity) Seed(ctx context.Context, creds map[string]domain.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := false
	for email, cred := range creds {
		key := normalizeEmail(email)
		if _, exists := s.users[key]; !exists {
			s.users[key] = cred
			added = true
		}
	}
	if added {
		s.persist(ctx)
	}
}

func (s *Identity) persist(ctx context.Context) {
	persist(ctx, s.state, identityKey, identitySnapshot{
		Users:           s.users,
		User:            s.current,
		IsAuthenticated: s.current != nil,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login opens the session. The error is the same for an unknown email and a
// wrong password, so the endpoint cannot be used to enumerate accounts.
func (s *Identity) Login(ctx context.Context, email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.users[normalizeEmail(email)]
	if !ok || entry.Password != password {
		return domain.User{}, ErrInvalidCredentials
	}
	u := entry.User
	s.current = &u
	s.persist(ctx)
	return u, nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Register creates a non-admin account and logs it in immediately.
func (s *Identity) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	key := normalizeEmail(in.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[key]; exists {
		return domain.User{}, ErrEmailExists
	}
	u := domain.User{
		ID:        "user-" + uuid.NewString(),
		Email:     in.Email,
		Name:      in.Name,
		Phone:     in.Phone,
		IsAdmin:   false,
		CreatedAt: time.Now(),
	}
	s.users[key] = domain.Credential{Password: in.Password, User: u}
	s.current = &u
	s.persist(ctx)
	return u, nil
}

// LoginOAuth opens a session for an externally verified email, creating the
// account on first sight. No password is attached to such accounts.
func (s *Identity) LoginOAuth(ctx context.Context, email, name string) domain.User {
	key := normalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.users[key]
	if !ok {
		entry = domain.Credential{User: domain.User{
			ID:        "user-" + uuid.NewString(),
			Email:     email,
			Name:      name,
			CreatedAt: time.Now(),
		}}
		s.users[key] = entry
	}
	u := entry.User
	s.current = &u
	s.persist(ctx)
	return u
}

// Logout clears the session; the registry is untouched.
func (s *Identity) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.persist(ctx)
}

func (s *Identity) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.User{}, false
	}
	return *s.current, true
}

func (s *Identity) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

type ProfilePatch struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// UpdateProfile merges into the current user and into its registry entry,
// keeping both views identical.
func (s *Identity) UpdateProfile(ctx context.Context, patch ProfilePatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.User{}, ErrNotLoggedIn
	}
	if patch.Name != nil {
		s.current.Name = *patch.Name
	}
	if patch.Phone != nil {
		s.current.Phone = *patch.Phone
	}
	key := normalizeEmail(s.current.Email)
	if entry, ok := s.users[key]; ok {
		entry.User = *s.current
		s.users[key] = entry
	}
	s.persist(ctx)
	return *s.current, nil
}

// ChangePassword swaps the stored password for the logged-in email. The
// session user is untouched: password is not part of the public entity.
func (s *Identity) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ErrNotLoggedIn
	}
	key := normalizeEmail(s.current.Email)
	entry, ok := s.users[key]
	if !ok || entry.Password != oldPassword {
		return ErrWrongPassword
	}
	entry.Password = newPassword
	s.users[key] = entry
	s.persist(ctx)
	return nil
}
