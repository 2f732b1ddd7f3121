package httpapi

import (
	"net/http"
	"time"

	"gigmatrix/internal/service"

	"go.uber.org/zap"
)

// LeadsHandler 场地询价 Handler
type LeadsHandler struct {
	leads  service.LeadsService
	logger *zap.Logger
}

// NewLeadsHandler 创建询价 Handler
func NewLeadsHandler(leads service.LeadsService, logger *zap.Logger) *LeadsHandler {
	return &LeadsHandler{leads: leads, logger: logger}
}

// Outcomes GET /api/v1/leads/outcomes?start&end
func (h *LeadsHandler) Outcomes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	from, err := parseDateParam(r, "start", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseDateParam(r, "end", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if from.IsZero() || to.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	outcomes, err := h.leads.Outcomes(r.Context(), from, to)
	if err != nil {
		h.logger.Error("lead outcomes query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":     from.Format("2006-01-02"),
		"to":       to.Format("2006-01-02"),
		"outcomes": outcomes,
	})
}
