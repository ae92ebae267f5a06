package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/updoc-health/updoc/internal/domain"
	"github.com/updoc-health/updoc/internal/store"
	apperrors "github.com/updoc-health/updoc/pkg/util"
)

func TestSignupOrLogin(t *testing.T) {
	identity := NewIdentityService(store.NewUserDirectory())

	created, err := identity.SignupOrLogin("alice", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, domain.RolePatient, created.Role)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "secret", created.PasswordHash)

	// Second call with the right password logs into the same account.
	again, err := identity.SignupOrLogin("alice", "secret", domain.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, domain.RolePatient, again.Role)

	_, err = identity.SignupOrLogin("alice", "wrong", "")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestSignupOrLoginValidation(t *testing.T) {
	identity := NewIdentityService(store.NewUserDirectory())

	_, err := identity.SignupOrLogin("  ", "secret", "")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = identity.SignupOrLogin("alice", "", "")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = identity.SignupOrLogin("alice", "secret", domain.Role("admin"))
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestSignupDoctorRole(t *testing.T) {
	identity := NewIdentityService(store.NewUserDirectory())

	doctor, err := identity.SignupOrLogin("dr-bob", "secret", domain.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, doctor.Role)

	resolved, err := identity.Resolve(doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, doctor.Username, resolved.Username)

	assert.Len(t, identity.List(), 1)
}
