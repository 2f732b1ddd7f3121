package httpapi

import (
	"errors"
	"net/http"

	"gigmatrix/internal/booking"
	"gigmatrix/internal/service"
	"gigmatrix/internal/snapshot"

	"go.uber.org/zap"
)

// BookingHandler 预订登记 Handler
type BookingHandler struct {
	booking service.BookingService
	logger  *zap.Logger
}

// NewBookingHandler 创建预订登记 Handler
func NewBookingHandler(booking service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{booking: booking, logger: logger}
}

// Plan POST /api/v1/bookings/plan
// 请求体为 service.PlanRequest；计数闸门不通过时返回 409
func (h *BookingHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req service.PlanRequest
	if err := readJSON(r, 1<<20, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.booking.Plan(r.Context(), req)
	if err != nil {
		h.writePlanError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BookingHandler) writePlanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrCountMismatch), errors.Is(err, booking.ErrNeedsApproval):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrUnknownResource),
		errors.Is(err, booking.ErrNoColumn),
		errors.Is(err, service.ErrUnknownResource):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, snapshot.ErrDateNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("booking plan failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
