// Package user manages account records keyed by caller identity.
package user

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/icplearn/backend/internal/domain"
	"github.com/icplearn/backend/internal/events"
	"github.com/icplearn/backend/internal/store"
)

// Collection is the record store collection for users.
const Collection = "users"

// Service handles user registration and profile management.
type Service struct {
	users  *store.Table[domain.User]
	clock  domain.Clock
	events events.Publisher

	// mu serializes writes so check-then-write sequences such as the
	// register uniqueness check do not interleave across requests.
	mu sync.Mutex
}

// NewService creates a user service over the given store.
func NewService(kv store.KV, clock domain.Clock, pub events.Publisher) *Service {
	return &Service{
		users:  store.NewTable[domain.User](kv, Collection),
		clock:  clock,
		events: pub,
	}
}

// RegisterParams are the caller-supplied fields for a new account.
type RegisterParams struct {
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	BTCAddress *string `json:"btc_address,omitempty"`
}

// Register creates the account for the calling identity. Each identity can
// register exactly once; a second attempt fails and leaves the existing
// record untouched.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if p.Username == "" {
		return nil, domain.InvalidPayloadf("username is required")
	}
	if p.Email == "" {
		return nil, domain.InvalidPayloadf("email is required")
	}

	exists, err := s.users.Contains(ctx, caller.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.InvalidInputf("user already exists")
	}

	now := s.clock.Now()
	u := domain.User{
		ID:         caller,
		Username:   p.Username,
		Email:      p.Email,
		BTCAddress: p.BTCAddress,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.Put(ctx, caller.String(), u); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.events, events.New(events.TypeUserRegistered, caller.String(),
		map[string]string{"username": u.Username}))
	return &u, nil
}

// UpdateParams are the optional fields of a profile update. Nil fields are
// left unchanged.
type UpdateParams struct {
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty"`
	BTCAddress *string `json:"btc_address,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// Update applies a partial update to the caller's own record. Identity and
// creation time are immutable.
func (s *Service) Update(ctx context.Context, p UpdateParams) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.get(ctx, caller)
	if err != nil {
		return nil, err
	}

	if p.Username != nil {
		if *p.Username == "" {
			return nil, domain.InvalidPayloadf("username cannot be empty")
		}
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.BTCAddress != nil {
		u.BTCAddress = p.BTCAddress
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	u.UpdatedAt = s.clock.Now()

	if err := s.users.Put(ctx, caller.String(), *u); err != nil {
		return nil, err
	}
	return u, nil
}

// Get returns the caller's own record.
func (s *Service) Get(ctx context.Context) (*domain.User, error) {
	caller, err := domain.CallerFrom(ctx)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, caller)
}

// GetByID returns any user's record by identity.
func (s *Service) GetByID(ctx context.Context, id domain.Principal) (*domain.User, error) {
	return s.get(ctx, id)
}

// Exists reports whether an account is registered for the identity.
func (s *Service) Exists(ctx context.Context, id domain.Principal) (bool, error) {
	return s.users.Contains(ctx, id.String())
}

// List returns registered users newest-first.
func (s *Service) List(ctx context.Context, skip, limit uint64) (store.Page[domain.User], error) {
	all, err := s.users.All(ctx)
	if err != nil {
		return store.Page[domain.User]{}, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return store.Paginate(all, skip, limit), nil
}

func (s *Service) get(ctx context.Context, id domain.Principal) (*domain.User, error) {
	u, err := s.users.Get(ctx, id.String())
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NotFoundf("user %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
