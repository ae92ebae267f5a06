package store

import (
	"strings"
	"sync"

	"github.com/updoc-health/updoc/internal/domain"
	apperrors "github.com/updoc-health/updoc/pkg/util"
)

// UserDirectory holds authenticated identities. The core only resolves
// ids and usernames here; credential handling lives in the identity
// service.
type UserDirectory struct {
	mu    sync.RWMutex
	byID  map[string]domain.User
	order []string
}

// NewUserDirectory creates an empty directory.
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{byID: make(map[string]domain.User)}
}

// Insert adds a user. Usernames are unique case-insensitively.
func (d *UserDirectory) Insert(user domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, id := range d.order {
		if strings.EqualFold(d.byID[id].Username, user.Username) {
			return apperrors.NewValidationError("username already taken", map[string]any{"username": user.Username})
		}
	}
	d.byID[user.ID] = user
	d.order = append(d.order, user.ID)
	return nil
}

// GetByID resolves a user id.
func (d *UserDirectory) GetByID(id string) (domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.byID[id]
	if !ok {
		return domain.User{}, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	return user, nil
}

// GetByUsername resolves a username case-insensitively.
func (d *UserDirectory) GetByUsername(username string) (domain.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, id := range d.order {
		if strings.EqualFold(d.byID[id].Username, username) {
			return d.byID[id], true
		}
	}
	return domain.User{}, false
}

// List returns all users in registration order.
func (d *UserDirectory) List() []domain.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	users := make([]domain.User, 0, len(d.order))
	for _, id := range d.order {
		users = append(users, d.byID[id])
	}
	return users
}
