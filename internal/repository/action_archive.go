package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/updoc-health/updoc/internal/domain"
)

// DB is the subset of pgxpool.Pool the archive needs. Satisfied by
// both *pgxpool.Pool and pgxmock pools.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// ActionArchive mirrors the in-memory audit log to durable storage so
// the trail survives process restarts. The in-memory log remains the
// system of record; archive writes are best-effort.
type ActionArchive interface {
	Append(ctx context.Context, action domain.Action) error
	ForTicket(ctx context.Context, ticketID string) ([]domain.Action, error)
}

type actionArchive struct {
	db DB
}

// NewActionArchive instantiates the archive.
func NewActionArchive(db DB) ActionArchive {
	return &actionArchive{db: db}
}

func (r *actionArchive) Append(ctx context.Context, action domain.Action) error {
	const query = `
        INSERT INTO audit_actions (id, ticket_id, user_id, description, recorded_at)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := r.db.Exec(ctx, query,
		action.ID,
		action.TicketID,
		action.UserID,
		action.Description,
		action.Timestamp,
	)
	return err
}

func (r *actionArchive) ForTicket(ctx context.Context, ticketID string) ([]domain.Action, error) {
	const query = `
        SELECT id, ticket_id, user_id, description, recorded_at
        FROM audit_actions WHERE ticket_id=$1 ORDER BY recorded_at ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Action
	for rows.Next() {
		var action domain.Action
		if err := rows.Scan(
			&action.ID,
			&action.TicketID,
			&action.UserID,
			&action.Description,
			&action.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, action)
	}
	return result, rows.Err()
}
