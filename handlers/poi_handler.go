package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"valpomap/middleware"
	"valpomap/models"
	"valpomap/services"
	"valpomap/utils/errors"
	"valpomap/viewmodel"
)

type PoiHandler struct {
	store services.PoiStore
}

// DeletePOIResponse echoes the removed record so the client can reconcile
// its markers without a full reload.
type DeletePOIResponse struct {
	Message    string     `json:"message"`
	DeletedPoi models.POI `json:"deletedPoi"`
}

func NewPoiHandler(store services.PoiStore) *PoiHandler {
	return &PoiHandler{store: store}
}

func (h *PoiHandler) CreatePOI(w http.ResponseWriter, r *http.Request) {
	var input models.POI
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	poi, err := h.store.Create(r.Context(), input)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(poi)
}

func (h *PoiHandler) ListPOIs(w http.ResponseWriter, r *http.Request) {
	pois, err := h.store.List(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	if pois == nil {
		pois = []models.POI{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pois)
}

// ListPOIsGrouped serves the category view model pre-built: a mapping from
// category to placed POIs, every known category present even when empty.
func (h *PoiHandler) ListPOIsGrouped(w http.ResponseWriter, r *http.Request) {
	pois, err := h.store.List(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	view := viewmodel.New(pois)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view.Buckets)
}

func (h *PoiHandler) UpdatePOI(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var changes services.PoiChanges
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	poi, err := h.store.Update(r.Context(), id, changes)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(poi)
}

func (h *PoiHandler) DeletePOI(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	poi, err := h.store.Delete(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DeletePOIResponse{
		Message:    "POI cancellato con successo",
		DeletedPoi: *poi,
	})
}

// ListCategories serves the shared category enumeration so the front-end
// legend never hard-codes it.
func (h *PoiHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Categories)
}
