package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{NewUnauthorized("invalid credentials"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("doctor role required"), "FORBIDDEN", http.StatusForbidden},
		{NewInvalidTransition("ticket already open", nil), "INVALID_TRANSITION", http.StatusConflict},
		{NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			domainErr := ToDomainError(tc.err)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
			assert.True(t, IsCode(tc.err, tc.code))
		})
	}
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	plain := errors.New("disk on fire")
	domainErr := ToDomainError(plain)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.ErrorIs(t, domainErr, plain)

	wrapped := fmt.Errorf("request: %w", NewForbidden("nope"))
	assert.True(t, IsCode(wrapped, "FORBIDDEN"))

	assert.Nil(t, ToDomainError(nil))
}
