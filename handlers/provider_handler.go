package handlers

import (
	"net/http"

	"reliefsupply/repository"

	"github.com/sirupsen/logrus"
)

type ProviderHandler struct {
	Ranker repository.ProviderRanker
	Log    logrus.FieldLogger
}

// Rank lists providers by total contributed amount, highest first.
func (h *ProviderHandler) Rank(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Ranker.RankProviders(r.Context())
	if err != nil {
		h.Log.WithError(err).Warn("provider ranking failed")
		writeFault(w, err, "providers retrieved failed")
		return
	}

	writeData(w, http.StatusOK, "successfully retrieved providers data", providers)
}
