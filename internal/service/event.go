package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/templui/storefront/internal/metrics"
	"github.com/templui/storefront/internal/model"
	"github.com/templui/storefront/internal/repository"
	"github.com/templui/storefront/internal/storage"
)

// EventService reacts to verified provider events. It never influences the
// webhook response: the endpoint acknowledges once the signature checks out.
type EventService struct {
	events   repository.EventRepository
	statuses repository.CustomerStatusRepository
	archive  storage.Archive // optional
	metrics  *metrics.Metrics
}

func NewEventService(
	events repository.EventRepository,
	statuses repository.CustomerStatusRepository,
	archive storage.Archive,
	m *metrics.Metrics,
) *EventService {
	return &EventService{
		events:   events,
		statuses: statuses,
		archive:  archive,
		metrics:  m,
	}
}

// eventSubject is the part of an event payload the ledger keeps.
type eventSubject struct {
	objectID   string
	customerID string
	status     string
}

func (s *EventService) Dispatch(ctx context.Context, event stripe.Event) error {
	slog.Info("stripe webhook received", "event_id", event.ID, "event_type", event.Type)

	subject, handled, err := parseSubject(event)
	if err != nil {
		s.metrics.WebhookEvent(string(event.Type))
		return fmt.Errorf("failed to parse %s payload: %w", event.Type, err)
	}
	if !handled {
		s.metrics.WebhookEvent(metrics.TypeUnhandled)
		slog.Warn("stripe webhook unhandled event type", "event_id", event.ID, "event_type", event.Type)
		return nil
	}

	s.metrics.WebhookEvent(string(event.Type))
	slog.Info("stripe webhook handled",
		"event_id", event.ID,
		"event_type", event.Type,
		"object_id", subject.objectID,
		"customer_id", subject.customerID,
	)

	return errors.Join(
		s.record(ctx, event, subject),
		s.archiveEvent(ctx, event),
	)
}

// archiveEvent stores the verified event under events/YYYY/MM/DD/<id>.json,
// dated by the provider's created timestamp.
func (s *EventService) archiveEvent(ctx context.Context, event stripe.Event) error {
	if s.archive == nil {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}

	key := fmt.Sprintf("%s/%s.json", time.Unix(event.Created, 0).UTC().Format("2006/01/02"), event.ID)
	return s.archive.Put(ctx, key, body)
}

func (s *EventService) record(ctx context.Context, event stripe.Event, subject eventSubject) error {
	now := time.Now().UTC()

	inserted, err := s.events.Record(ctx, &model.EventRecord{
		EventID:    event.ID,
		Type:       string(event.Type),
		CustomerID: subject.customerID,
		ObjectID:   subject.objectID,
		Created:    event.Created,
		ReceivedAt: now,
	})
	if err != nil {
		return err
	}
	if !inserted {
		slog.Debug("stripe webhook redelivered", "event_id", event.ID)
	}

	if subject.customerID == "" || subject.status == "" {
		return nil
	}

	// redeliveries go through the upsert too, it is a no-op for older events
	err = s.statuses.Upsert(ctx, &model.CustomerPaymentStatus{
		CustomerID:   subject.customerID,
		Status:       subject.status,
		LastEventID:  event.ID,
		EventCreated: event.Created,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	return nil
}

// CustomerHistory is what the ledger knows about one provider customer.
type CustomerHistory struct {
	Status *model.CustomerPaymentStatus // nil until a status-bearing event arrives
	Events []*model.EventRecord         // ordered by provider timestamp
}

// CustomerHistory returns the latest payment status and every recorded event
// for a customer. An unknown customer yields an empty history, not an error.
func (s *EventService) CustomerHistory(ctx context.Context, customerID string) (*CustomerHistory, error) {
	status, err := s.statuses.ByCustomerID(ctx, customerID)
	if err != nil && !errors.Is(err, repository.ErrCustomerStatusNotFound) {
		return nil, fmt.Errorf("failed to get customer status: %w", err)
	}

	events, err := s.events.ByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer events: %w", err)
	}

	return &CustomerHistory{Status: status, Events: events}, nil
}

func parseSubject(event stripe.Event) (eventSubject, bool, error) {
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := decodeObject(event, &sess); err != nil {
			return eventSubject{}, true, err
		}
		return eventSubject{
			objectID:   sess.ID,
			customerID: customerID(sess.Customer),
			status:     model.PaymentStatusCheckoutCompleted,
		}, true, nil

	case stripe.EventTypeInvoicePaid, stripe.EventTypeInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := decodeObject(event, &inv); err != nil {
			return eventSubject{}, true, err
		}
		status := model.PaymentStatusPaid
		if event.Type == stripe.EventTypeInvoicePaymentFailed {
			status = model.PaymentStatusPaymentFailed
		}
		return eventSubject{
			objectID:   inv.ID,
			customerID: customerID(inv.Customer),
			status:     status,
		}, true, nil

	case stripe.EventTypeCustomerSubscriptionUpdated, stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := decodeObject(event, &sub); err != nil {
			return eventSubject{}, true, err
		}
		status := string(sub.Status)
		if event.Type == stripe.EventTypeCustomerSubscriptionDeleted {
			status = model.PaymentStatusCanceled
		}
		return eventSubject{
			objectID:   sub.ID,
			customerID: customerID(sub.Customer),
			status:     status,
		}, true, nil
	}

	return eventSubject{}, false, nil
}

func decodeObject(event stripe.Event, v any) error {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return errors.New("event has no data object")
	}
	return json.Unmarshal(event.Data.Raw, v)
}

func customerID(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}
