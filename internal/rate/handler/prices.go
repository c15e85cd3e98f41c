package handler

import (
	"net/http"
	"storefx/internal/domain"
)

type PricesResponse struct {
	// Rate is null when prices are USD only.
	Rate   *ExchangeRateResponse `json:"rate"`
	Prices []domain.DisplayPrice `json:"prices"`
}

// GetPrices godoc
// @Summary Project USD prices
// @Description Projects one or more USD amounts into display prices using the cached rate. Without an active rate only USD is returned.
// @Tags Prices
// @Produce json
// @Param amount query []string true "USD amount, repeatable" collectionFormat(multi)
// @Success 200 {object} PricesResponse
// @Failure 400 {object} errorResponse
// @Router /prices [get]
func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	amounts, err := h.amounts.ParseAmounts(r.URL.Query()["amount"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// one snapshot for the whole response, so every price uses the same rate
	current := h.rates.Current()

	res := PricesResponse{Prices: h.projector.ProjectAll(amounts, current)}
	if current != nil {
		rateRes := toRateResponse(*current)
		res.Rate = &rateRes
	}
	writeJSON(w, http.StatusOK, res)
}
