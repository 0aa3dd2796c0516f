package handler

import (
	"net/http"

	"github.com/templui/storefront/internal/model"
	"github.com/templui/storefront/internal/ui"
)

// Catalog lists what the storefront sells.
type Catalog interface {
	Products() []*model.Product
	Plans() []*model.Plan
}

type HomeHandler struct {
	catalog Catalog
}

func NewHomeHandler(catalog Catalog) *HomeHandler {
	return &HomeHandler{catalog: catalog}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, ui.HomePage(h.catalog.Products(), h.catalog.Plans()))
}

func (h *HomeHandler) SuccessPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, ui.SuccessPage())
}

func (h *HomeHandler) CancelPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, ui.CancelPage())
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, ui.NotFoundPage())
}
