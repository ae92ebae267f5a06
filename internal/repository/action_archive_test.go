package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/updoc-health/updoc/internal/domain"
)

func TestActionArchiveAppend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	action := domain.Action{
		ID:          "a1",
		TicketID:    "t1",
		UserID:      "u1",
		Description: "Ticket created",
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO audit_actions").
		WithArgs(action.ID, action.TicketID, action.UserID, action.Description, action.Timestamp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	archive := NewActionArchive(mock)
	require.NoError(t, archive.Append(context.Background(), action))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActionArchiveForTicket(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "ticket_id", "user_id", "description", "recorded_at"}).
		AddRow("a1", "t1", "u1", "Ticket created", at).
		AddRow("a2", "t1", "u2", "Ticket status updated to closed", at.Add(time.Minute))

	mock.ExpectQuery("SELECT id, ticket_id, user_id, description, recorded_at").
		WithArgs("t1").
		WillReturnRows(rows)

	archive := NewActionArchive(mock)
	trail, err := archive.ForTicket(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "a1", trail[0].ID)
	assert.Equal(t, "Ticket status updated to closed", trail[1].Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}
