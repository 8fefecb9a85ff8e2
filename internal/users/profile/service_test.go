// Copyright (c) 2026 SafeCampus. All rights reserved.

package profile_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/platform/sec"
	"github.com/Sachin2501/safecampus/internal/users/auth"
	"github.com/Sachin2501/safecampus/internal/users/profile"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// memIdentityRepo is a minimal in-memory auth.IdentityRepository.
type memIdentityRepo struct {
	mu   sync.Mutex
	byID map[string]auth.Identity
}

func (repo *memIdentityRepo) FindByEmail(_ context.Context, email string) (*auth.Identity, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, identity := range repo.byID {
		if identity.Email == email {
			clone := identity
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (repo *memIdentityRepo) FindByID(_ context.Context, id string) (*auth.Identity, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	identity, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	clone := identity
	return &clone, nil
}

func (repo *memIdentityRepo) Insert(_ context.Context, identity *auth.Identity) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.byID[identity.ID] = *identity
	return nil
}

func (repo *memIdentityRepo) Update(_ context.Context, identity *auth.Identity) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.byID[identity.ID]; !ok {
		return apperr.NotFound("Account")
	}
	repo.byID[identity.ID] = *identity
	return nil
}

func (repo *memIdentityRepo) Count(_ context.Context) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.byID), nil
}

// memSessionStore is a minimal in-memory auth.SessionStore.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
}

func (store *memSessionStore) Save(_ context.Context, session *auth.Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sessions[session.ID] = *session
	return nil
}

func (store *memSessionStore) Get(_ context.Context, id string) (*auth.Session, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	session, ok := store.sessions[id]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	clone := session
	return &clone, nil
}

func (store *memSessionStore) Delete(_ context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.sessions, id)
	return nil
}

type fixture struct {
	identities *memIdentityRepo
	sessions   *memSessionStore
	manager    *auth.SessionManager
	service    *profile.Service
	claims     *sec.SessionClaims
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	identities := &memIdentityRepo{byID: make(map[string]auth.Identity)}
	sessions := &memSessionStore{sessions: make(map[string]auth.Session)}

	signer, err := sec.NewTokenService(testSecret, "safecampus.test")
	require.NoError(t, err)
	manager := auth.NewSessionManager(sessions, signer)

	identity := &auth.Identity{
		ID:             "user-1",
		Name:           "Alex Johnson",
		Email:          "alex@campus.edu",
		Phone:          "+1-555-0100",
		CredentialHash: "$2a$10$fakehash",
		Role:           sec.RoleStudent,
		MemberSince:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EmergencyContacts: []auth.EmergencyContact{
			{ID: "c1", Name: "Sam Johnson", Phone: "+1-555-0101", Relationship: "parent"},
		},
	}
	require.NoError(t, identities.Insert(context.Background(), identity))

	session, _, err := manager.Create(context.Background(), identity, false)
	require.NoError(t, err)

	return &fixture{
		identities: identities,
		sessions:   sessions,
		manager:    manager,
		service:    profile.NewService(identities, manager),
		claims:     session.Claims(),
	}
}

/*
TestUpdateProfile verifies the mutate, persist, refresh sequence.
*/
func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	updated, err := f.service.UpdateProfile(ctx, f.claims, profile.UpdateInput{
		Name:  "Alex J. Johnson",
		Phone: "+1-555-0199",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alex J. Johnson", updated.Name)
	assert.Equal(t, "+1-555-0199", updated.Phone)
	assert.Empty(t, updated.CredentialHash)

	// Persisted identity reflects the change, with the credential intact.
	stored, err := f.identities.FindByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alex J. Johnson", stored.Name)

	// The session snapshot was refreshed in place.
	session, err := f.sessions.Get(ctx, f.claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Alex J. Johnson", session.User.Name)
}

/*
TestUpdateProfile_Validation verifies empty fields and missing sessions.
*/
func TestUpdateProfile_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name  string
		input profile.UpdateInput
	}{
		{"empty_name", profile.UpdateInput{Name: "  ", Phone: "+1-555-0100"}},
		{"empty_phone", profile.UpdateInput{Name: "Alex", Phone: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.UpdateProfile(ctx, f.claims, tt.input)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.service.UpdateProfile(ctx, nil, profile.UpdateInput{Name: "A", Phone: "B"})
		require.Error(t, err)
		assert.Equal(t, "No active session", err.Error())
	})
}

/*
TestAddContact verifies contact creation with assigned IDs.
*/
func TestAddContact(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	contact, err := f.service.AddContact(ctx, f.claims, profile.ContactInput{
		Name:         "Jordan Lee",
		Phone:        "+1-555-0102",
		Relationship: "roommate",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, contact.ID)

	stored, err := f.identities.FindByID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, stored.EmergencyContacts, 2)
	assert.Equal(t, "Jordan Lee", stored.EmergencyContacts[1].Name)

	t.Run("missing_field", func(t *testing.T) {
		_, err := f.service.AddContact(ctx, f.claims, profile.ContactInput{
			Name:  "No Phone",
			Phone: "",
		})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestRemoveContact verifies removal by ID, by name, and idempotence.
*/
func TestRemoveContact(t *testing.T) {
	ctx := context.Background()

	t.Run("by_id", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.RemoveContact(ctx, f.claims, "c1"))

		stored, err := f.identities.FindByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, stored.EmergencyContacts)
	})

	t.Run("by_name", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.RemoveContact(ctx, f.claims, "Sam Johnson"))

		stored, err := f.identities.FindByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, stored.EmergencyContacts)

		// Session snapshot follows.
		session, err := f.sessions.Get(ctx, f.claims.SessionID)
		require.NoError(t, err)
		assert.Empty(t, session.User.EmergencyContacts)
	})

	t.Run("absent_target_is_success", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.service.RemoveContact(ctx, f.claims, "nobody"))

		stored, err := f.identities.FindByID(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, stored.EmergencyContacts, 1)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)
		err := f.service.RemoveContact(ctx, nil, "c1")
		require.Error(t, err)
		assert.Equal(t, "No active session", err.Error())
	})
}
