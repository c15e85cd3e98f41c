package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"storefx/internal/rate"

	"github.com/sirupsen/logrus"
)

// AdminHandler exposes rate writes. It is only mounted when the source supports them.
type AdminHandler struct {
	service AdminService
	rates   RateReader
}

func NewAdminHandler(service AdminService, rates RateReader) *AdminHandler {
	return &AdminHandler{service: service, rates: rates}
}

// ActivateRate godoc
// @Summary Activate a new exchange rate
// @Description Stores a new active rate, deactivates the previous one and refreshes the cache.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rate.ActivateRateInput true "New rates"
// @Success 201 {object} ExchangeRateResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/exchange-rates [post]
func (h *AdminHandler) ActivateRate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1024)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req rate.ActivateRateInput
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.service.Activate(r.Context(), req)
	if err != nil {
		if errors.Is(err, rate.ErrInvalidRateInput) || errors.Is(err, rate.ErrRateMustBePositive) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).WithField("handler", "ActivateRate").Error("exchange rate wasn't activated")
		writeError(w, http.StatusInternalServerError, "failed to activate exchange rate")
		return
	}

	writeJSON(w, http.StatusCreated, toRateResponse(created))
}

// DeactivateRate godoc
// @Summary Deactivate the active exchange rate
// @Description Leaves the store without an active rate; storefront prices fall back to USD only.
// @Tags Admin
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /admin/exchange-rates/active [delete]
func (h *AdminHandler) DeactivateRate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deactivate(r.Context()); err != nil {
		logrus.WithError(err).WithField("handler", "DeactivateRate").Error("exchange rate wasn't deactivated")
		writeError(w, http.StatusInternalServerError, "failed to deactivate exchange rate")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type RefreshResponse struct {
	// Rate is null when the source has no active rate.
	Rate *ExchangeRateResponse `json:"rate"`
}

// RefreshRate godoc
// @Summary Refresh the cached exchange rate now
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RefreshResponse
// @Failure 401 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /admin/exchange-rates/refresh [post]
func (h *AdminHandler) RefreshRate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		if errors.Is(err, rate.ErrSynchronizerStopped) {
			writeError(w, http.StatusServiceUnavailable, "synchronizer is stopped")
			return
		}
		logrus.WithError(err).WithField("handler", "RefreshRate").Warn("manual refresh failed")
		writeError(w, http.StatusBadGateway, "failed to refresh exchange rate")
		return
	}

	var res RefreshResponse
	if current := h.rates.Current(); current != nil {
		rateRes := toRateResponse(*current)
		res.Rate = &rateRes
	}
	writeJSON(w, http.StatusOK, res)
}
