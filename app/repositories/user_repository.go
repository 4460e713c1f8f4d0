package repositories

import (
	"github.com/vendixlabs/vendix/app/models"
	"github.com/vendixlabs/vendix/pkg/kvstore"
)

// UserRepository handles the single operator account and the session flag.
type UserRepository struct {
	store kvstore.Store
}

func NewUserRepository(store kvstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Find returns the stored user. ErrNotFound means no account exists yet.
func (r *UserRepository) Find() (models.User, error) {
	var u models.User
	if err := r.store.Get(KeyUser, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Exists reports whether an account has been created.
func (r *UserRepository) Exists() bool {
	return r.store.Has(KeyUser)
}

// Save replaces the whole user document.
func (r *UserRepository) Save(u models.User) error {
	return r.store.Put(KeyUser, u)
}

// OpenSession writes the session presence flag.
func (r *UserRepository) OpenSession() error {
	return r.store.Put(KeySession, true)
}

// CloseSession removes the session flag.
func (r *UserRepository) CloseSession() error {
	return r.store.Delete(KeySession)
}

// SessionOpen reports whether a session flag is present.
func (r *UserRepository) SessionOpen() bool {
	return r.store.Has(KeySession)
}
