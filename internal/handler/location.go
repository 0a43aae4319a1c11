package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/paramparahq/parampara/internal/ctxkeys"
	"github.com/paramparahq/parampara/internal/service"
)

type LocationHandler struct {
	locationService *service.LocationService
}

func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

type recordLocationRequest struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}

func (h *LocationHandler) Record(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req recordLocationRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.locationService.Record(user.ID, req.Lat, req.Lon, req.Address)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, location)
}

func (h *LocationHandler) Latest(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	location, err := h.locationService.Latest(user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoLocation) {
			respondError(w, http.StatusNotFound, "no location recorded")
			return
		}
		slog.Error("failed to get location", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to get location")
		return
	}

	respondJSON(w, http.StatusOK, location)
}
