package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gigmatrix/internal/service"

	"go.uber.org/zap"
)

// ReconcileHandler 跨系统对账 Handler
type ReconcileHandler struct {
	reconcile service.ReconcileService
	logger    *zap.Logger
}

// NewReconcileHandler 创建对账 Handler
func NewReconcileHandler(reconcile service.ReconcileService, logger *zap.Logger) *ReconcileHandler {
	return &ReconcileHandler{reconcile: reconcile, logger: logger}
}

// ServeHTTP POST /api/v1/reconcile/{year}
func (h *ReconcileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/reconcile/")
	if rest == "" || strings.Contains(rest, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	year, err := strconv.Atoi(rest)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", rest))
		return
	}

	rep, err := h.reconcile.Compare(r.Context(), year)
	if err != nil {
		h.logger.Error("reconciliation failed", zap.Int("year", year), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
