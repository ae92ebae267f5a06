package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{"open to in-progress", TicketStatusOpen, TicketStatusInProgress, true},
		{"open to closed", TicketStatusOpen, TicketStatusClosed, true},
		{"in-progress to closed", TicketStatusInProgress, TicketStatusClosed, true},
		{"in-progress back to open", TicketStatusInProgress, TicketStatusOpen, true},
		{"closed reopens", TicketStatusClosed, TicketStatusOpen, true},
		{"closed cannot go to in-progress", TicketStatusClosed, TicketStatusInProgress, false},
		{"no-op open", TicketStatusOpen, TicketStatusOpen, false},
		{"no-op in-progress", TicketStatusInProgress, TicketStatusInProgress, false},
		{"no-op closed", TicketStatusClosed, TicketStatusClosed, false},
		{"unknown source", TicketStatus("archived"), TicketStatusOpen, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestTicketStatusValid(t *testing.T) {
	assert.True(t, TicketStatusOpen.Valid())
	assert.True(t, TicketStatusInProgress.Valid())
	assert.True(t, TicketStatusClosed.Valid())
	assert.False(t, TicketStatus("").Valid())
	assert.False(t, TicketStatus("pending").Valid())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RolePatient.Valid())
	assert.True(t, RoleDoctor.Valid())
	assert.False(t, Role("admin").Valid())
}
