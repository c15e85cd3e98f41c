package handler

import (
	"net/http"
)

// GetExchangeRate godoc
// @Summary Active exchange rate
// @Description Returns the cached active exchange rate. Staleness is bounded by the polling interval.
// @Tags Rates
// @Produce json
// @Success 200 {object} ExchangeRateResponse
// @Failure 404 {object} errorResponse
// @Router /exchange-rate [get]
func (h *Handler) GetExchangeRate(w http.ResponseWriter, _ *http.Request) {
	current := h.rates.Current()
	if current == nil {
		writeError(w, http.StatusNotFound, "no active exchange rate")
		return
	}
	writeJSON(w, http.StatusOK, toRateResponse(*current))
}
