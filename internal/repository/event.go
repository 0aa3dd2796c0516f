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
	ErrEventNotFound = errors.New("event not found")
)

type EventRepository interface {
	// Record stores the event once. Returns false when the event id was
	// already recorded (provider redelivery).
	Record(ctx context.Context, rec *model.EventRecord) (bool, error)
	ByEventID(ctx context.Context, eventID string) (*model.EventRecord, error)
	ByCustomerID(ctx context.Context, customerID string) ([]*model.EventRecord, error)
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Record(ctx context.Context, rec *model.EventRecord) (bool, error) {
	query := `
		INSERT INTO event_records (event_id, type, customer_id, object_id, created, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query,
		rec.EventID,
		rec.Type,
		rec.CustomerID,
		rec.ObjectID,
		rec.Created,
		rec.ReceivedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record event %s: %w", rec.EventID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *eventRepository) ByEventID(ctx context.Context, eventID string) (*model.EventRecord, error) {
	rec := &model.EventRecord{}
	query := `SELECT * FROM event_records WHERE event_id = $1`

	err := r.db.GetContext(ctx, rec, query, eventID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (r *eventRepository) ByCustomerID(ctx context.Context, customerID string) ([]*model.EventRecord, error) {
	var recs []*model.EventRecord
	query := `SELECT * FROM event_records WHERE customer_id = $1 ORDER BY created, event_id`

	err := r.db.SelectContext(ctx, &recs, query, customerID)
	if err != nil {
		return nil, err
	}

	return recs, nil
}
