// Copyright (c) 2026 SafeCampus. All rights reserved.

package auth_test

import (
	"context"
	"errors"
	"sync"

	"github.com/Sachin2501/safecampus/internal/platform/apperr"
	"github.com/Sachin2501/safecampus/internal/users/auth"
)

// memIdentityRepo is an in-memory IdentityRepository for unit tests.
type memIdentityRepo struct {
	mu         sync.Mutex
	byID       map[string]auth.Identity
	failUpdate bool
}

func newMemIdentityRepo() *memIdentityRepo {
	return &memIdentityRepo{byID: make(map[string]auth.Identity)}
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

	for _, existing := range repo.byID {
		if existing.Email == identity.Email {
			return apperr.Conflict("Account already exists")
		}
	}
	repo.byID[identity.ID] = *identity
	return nil
}

func (repo *memIdentityRepo) Update(_ context.Context, identity *auth.Identity) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.failUpdate {
		return errors.New("storage offline")
	}
	if _, ok := repo.byID[identity.ID]; !ok {
		return apperr.NotFound("Account")
	}

	// Preserve the stored credential hash, like the SQL UPDATE does.
	stored := repo.byID[identity.ID]
	clone := *identity
	clone.CredentialHash = stored.CredentialHash
	repo.byID[identity.ID] = clone
	return nil
}

func (repo *memIdentityRepo) Count(_ context.Context) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.byID), nil
}

// memSessionStore is an in-memory SessionStore for unit tests.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]auth.Session
	failSave bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]auth.Session)}
}

func (store *memSessionStore) Save(_ context.Context, session *auth.Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.failSave {
		return errors.New("storage offline")
	}
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

func (store *memSessionStore) len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.sessions)
}
