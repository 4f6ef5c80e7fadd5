package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amfdata/contact-exchange/internal/entity"
)

// ActivityRepository records and reads the administrative audit log.
type ActivityRepository interface {
	Create(ctx context.Context, action, details string, userID uuid.UUID, userName string) error
	List(ctx context.Context, page, perPage int) ([]entity.Activity, int, error)
}

// PGXActivityRepository implements ActivityRepository with pgx.
type PGXActivityRepository struct {
	pool pgxPool
}

// NewPGXActivityRepository instantiates an activity repository.
func NewPGXActivityRepository(pool *pgxpool.Pool) *PGXActivityRepository {
	return &PGXActivityRepository{pool: pool}
}

// Create appends one audit entry.
func (r *PGXActivityRepository) Create(ctx context.Context, action, details string, userID uuid.UUID, userName string) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO activities (action, details, user_id, user_name)
        VALUES ($1, $2, $3, $4)
    `, action, details, userID, userName)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List returns one page of audit entries, newest first.
func (r *PGXActivityRepository) List(ctx context.Context, page, perPage int) ([]entity.Activity, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	rows, err := r.pool.Query(ctx, `
        SELECT id, action, details, user_id, user_name, created_at
        FROM activities
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.Action, &a.Details, &a.UserID, &a.UserName, &a.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity row: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activities: %w", err)
	}
	return activities, total, nil
}
