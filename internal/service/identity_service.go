package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/updoc-health/updoc/internal/domain"
	"github.com/updoc-health/updoc/internal/store"
	apperrors "github.com/updoc-health/updoc/pkg/util"
)

// IdentityService is the boundary that yields authenticated
// identities. First login with a new username creates the account;
// subsequent logins verify the password. Credentials are stored as
// bcrypt hashes and never leave this service.
type IdentityService struct {
	users      *store.UserDirectory
	bcryptCost int
}

// NewIdentityService constructs the service.
func NewIdentityService(users *store.UserDirectory) *IdentityService {
	return &IdentityService{users: users, bcryptCost: bcrypt.DefaultCost}
}

// SignupOrLogin authenticates a username/password pair, creating the
// account on first use. The role applies only at signup and defaults
// to patient.
func (s *IdentityService) SignupOrLogin(username, password string, role domain.Role) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, apperrors.NewValidationError("username and password required", nil)
	}

	if existing, ok := s.users.GetByUsername(username); ok {
		if err := bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)); err != nil {
			return domain.User{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return existing, nil
	}

	if role == "" {
		role = domain.RolePatient
	}
	if !role.Valid() {
		return domain.User{}, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return domain.User{}, apperrors.NewInternalError(err)
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Insert(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Resolve returns the user with the given id.
func (s *IdentityService) Resolve(id string) (domain.User, error) {
	return s.users.GetByID(id)
}

// List returns all registered users. Password hashes are stripped by
// the transport layer, not here.
func (s *IdentityService) List() []domain.User {
	return s.users.List()
}
