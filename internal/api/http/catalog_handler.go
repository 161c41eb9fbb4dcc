package http

import (
	"net/http"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/service"
)

type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) CreateDefinition(w http.ResponseWriter, r *http.Request) {
	var def domain.CatalogItem
	if err := decodeBody(r, &def); err != nil {
		writeError(w, err)
		return
	}
	if err := h.catalog.CreateDefinition(r.Context(), ScopeFrom(r), &def); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, def)
}

func (h *CatalogHandler) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.catalog.ListDefinitions(r.Context(), ScopeFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if defs == nil {
		defs = []domain.CatalogItem{}
	}
	writeJSON(w, http.StatusOK, defs)
}

func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item domain.InventoryItem
	if err := decodeBody(r, &item); err != nil {
		writeError(w, err)
		return
	}
	if err := h.catalog.CreateItem(r.Context(), ScopeFrom(r), &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListItems(r.Context(), ScopeFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.InventoryItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) CreateSalonService(w http.ResponseWriter, r *http.Request) {
	var svc domain.SalonService
	if err := decodeBody(r, &svc); err != nil {
		writeError(w, err)
		return
	}
	if err := h.catalog.CreateSalonService(r.Context(), ScopeFrom(r), &svc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, svc)
}

func (h *CatalogHandler) ListSalonServices(w http.ResponseWriter, r *http.Request) {
	svcs, err := h.catalog.ListSalonServices(r.Context(), ScopeFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if svcs == nil {
		svcs = []domain.SalonService{}
	}
	writeJSON(w, http.StatusOK, svcs)
}
