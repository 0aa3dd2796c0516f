package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/templui/storefront/internal/model"
)

type staticCatalog struct{}

func (staticCatalog) Products() []*model.Product {
	return []*model.Product{{Slug: "mug", Name: "Premium Mug", Price: 2500}}
}

func (staticCatalog) Plans() []*model.Plan {
	return []*model.Plan{{Slug: "monthly", Name: "Monthly", PriceID: "price_m"}}
}

func TestHomePageListsCatalog(t *testing.T) {
	h := NewHomeHandler(staticCatalog{})

	rec := httptest.NewRecorder()
	h.HomePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-name="Premium Mug"`)
	assert.Contains(t, rec.Body.String(), `data-price-id="price_m"`)
}

func TestResultAndNotFoundPages(t *testing.T) {
	h := NewHomeHandler(staticCatalog{})

	rec := httptest.NewRecorder()
	h.CancelPage(rec, httptest.NewRequest(http.MethodGet, "/cancel", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Checkout canceled")

	rec = httptest.NewRecorder()
	h.NotFoundPage(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(pingFunc(func(context.Context) error { return nil })).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	NewHealthHandler(pingFunc(func(context.Context) error { return errors.New("down") })).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
