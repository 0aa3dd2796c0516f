package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/storefront/internal/model"
)

var (
	ErrCustomerStatusNotFound = errors.New("customer payment status not found")
)

type CustomerStatusRepository interface {
	// Upsert writes the status unless a newer event already set it.
	// Events arrive out of order, the provider's created timestamp wins.
	Upsert(ctx context.Context, status *model.CustomerPaymentStatus) error
	ByCustomerID(ctx context.Context, customerID string) (*model.CustomerPaymentStatus, error)
}

type customerStatusRepository struct {
	db *sqlx.DB
}

func NewCustomerStatusRepository(db *sqlx.DB) CustomerStatusRepository {
	return &customerStatusRepository{db: db}
}

func (r *customerStatusRepository) Upsert(ctx context.Context, status *model.CustomerPaymentStatus) error {
	query := `
		INSERT INTO customer_payment_status (customer_id, status, last_event_id, event_created, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id) DO UPDATE SET
			status = excluded.status,
			last_event_id = excluded.last_event_id,
			event_created = excluded.event_created,
			updated_at = excluded.updated_at
		WHERE excluded.event_created >= customer_payment_status.event_created
	`

	_, err := r.db.ExecContext(ctx, query,
		status.CustomerID,
		status.Status,
		status.LastEventID,
		status.EventCreated,
		status.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert status for customer %s: %w", status.CustomerID, err)
	}
	return nil
}

func (r *customerStatusRepository) ByCustomerID(ctx context.Context, customerID string) (*model.CustomerPaymentStatus, error) {
	status := &model.CustomerPaymentStatus{}
	query := `SELECT * FROM customer_payment_status WHERE customer_id = $1`

	err := r.db.GetContext(ctx, status, query, customerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerStatusNotFound
	}
	if err != nil {
		return nil, err
	}

	return status, nil
}
