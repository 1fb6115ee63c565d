package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"flightdesk-service/internal/domain/entity"
	"flightdesk-service/internal/usecase"
	"flightdesk-service/pkg/logger"
)

// Handler serves the flight desk over HTTP
type Handler struct {
	desk   *usecase.FlightDesk
	logger logger.Logger
}

// NewHandler creates a new handler
func NewHandler(desk *usecase.FlightDesk, logger logger.Logger) *Handler {
	return &Handler{
		desk:   desk,
		logger: logger.With("component", "api-handler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Delay  int    `json:"delay"`
}

type summaryResponse struct {
	Registry string `json:"registry"`
	Count    int    `json:"count"`
	Empty    bool   `json:"empty"`
}

type compareResponse struct {
	Operation usecase.SetOperation `json:"operation"`
	Left      string               `json:"left"`
	Right     string               `json:"right"`
	Flights   []entity.Flight      `json:"flights"`
}

type deduplicateResponse struct {
	Registry string `json:"registry"`
	Removed  int    `json:"removed"`
}

// GetHealth reports liveness
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

// GetFlights returns every flight of a registry in storage order
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.desk.Flights(chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, flights)
}

// InsertFlight adds the flight in the request body
func (h *Handler) InsertFlight(w http.ResponseWriter, r *http.Request) {
	var view entity.FlightView
	if err := json.NewDecoder(r.Body).Decode(&view); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid flight: " + err.Error()})
		return
	}

	f := view.Flight()
	if err := h.desk.Insert(chi.URLParam(r, "name"), f); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, f)
}

// GetFlight looks a flight up by id and arrival time
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flightID(w, r)
	if !ok {
		return
	}

	f, found, err := h.desk.Find(chi.URLParam(r, "name"), id, chi.URLParam(r, "arrival"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !found {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "flight not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, f)
}

// UpdateFlight sets status and delay on every matching flight
func (h *Handler) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flightID(w, r)
	if !ok {
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid status update: " + err.Error()})
		return
	}

	updated, err := h.desk.Update(chi.URLParam(r, "name"), id, chi.URLParam(r, "arrival"), req.Status, req.Delay)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !updated {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "flight not found for update"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFlight removes every matching flight
func (h *Handler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := h.flightID(w, r)
	if !ok {
		return
	}

	deleted, err := h.desk.Delete(chi.URLParam(r, "name"), id, chi.URLParam(r, "arrival"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !deleted {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "flight not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Deduplicate collapses duplicate flights of a registry
func (h *Handler) Deduplicate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	removed, err := h.desk.Deduplicate(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, deduplicateResponse{Registry: name, Removed: removed})
}

// GetLongestDelay returns the most delayed flight, 404 when empty
func (h *Handler) GetLongestDelay(w http.ResponseWriter, r *http.Request) {
	f, ok, err := h.desk.LongestDelay(chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !ok {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no flights available"})
		return
	}
	h.writeJSON(w, http.StatusOK, f)
}

// GetSummary returns count and emptiness of a registry
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	count, err := h.desk.Count(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summaryResponse{Registry: name, Count: count, Empty: count == 0})
}

// Compare applies a set operation between two registries
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	op, err := usecase.ParseSetOperation(chi.URLParam(r, "op"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	left := queryOrDefault(r, "left", usecase.PrimaryRegistry)
	right := queryOrDefault(r, "right", usecase.SecondaryRegistry)

	flights, err := h.desk.Compare(op, left, right)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, compareResponse{Operation: op, Left: left, Right: right, Flights: flights})
}

func (h *Handler) flightID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "flight id must be an integer"})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrRegistryNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrUnknownSetOperation):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("Request failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func queryOrDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
