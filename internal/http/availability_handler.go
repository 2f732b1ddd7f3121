package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gigmatrix/internal/service"
	"gigmatrix/internal/snapshot"

	"go.uber.org/zap"
)

// AvailabilityHandler 可用性查询 Handler
type AvailabilityHandler struct {
	availability service.AvailabilityService
	logger       *zap.Logger
}

// NewAvailabilityHandler 创建可用性查询 Handler
func NewAvailabilityHandler(availability service.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, logger: logger}
}

// ServeHTTP 分发 /api/v1/availability/{year}/... 下的查询
func (h *AvailabilityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/availability/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", parts[0]))
		return
	}

	switch parts[1] {
	case "range":
		h.queryRange(w, r, year)
	case "fully-booked":
		h.fullyBooked(w, r, year)
	default:
		h.checkDate(w, r, year, parts[1])
	}
}

// GET /api/v1/availability/{year}/{month-day}
func (h *AvailabilityHandler) checkDate(w http.ResponseWriter, r *http.Request, year int, monthDay string) {
	md := strings.SplitN(monthDay, "-", 2)
	if len(md) != 2 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want M-D", monthDay))
		return
	}
	month, err1 := strconv.Atoi(md[0])
	day, err2 := strconv.Atoi(md[1])
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want M-D", monthDay))
		return
	}

	rep, err := h.availability.CheckDate(r.Context(), year, month, day)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// GET /api/v1/availability/{year}/range?start&end&day&min_spots
func (h *AvailabilityHandler) queryRange(w http.ResponseWriter, r *http.Request, year int) {
	from, to, ok := h.window(w, r, year)
	if !ok {
		return
	}
	q := service.RangeQuery{
		From:     from,
		To:       to,
		Day:      r.URL.Query().Get("day"),
		MinSpots: parseIntParam(r, "min_spots", 1),
	}

	rep, err := h.availability.QueryRange(r.Context(), year, q)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// GET /api/v1/availability/{year}/fully-booked?start&end
func (h *AvailabilityHandler) fullyBooked(w http.ResponseWriter, r *http.Request, year int) {
	from, to, ok := h.window(w, r, year)
	if !ok {
		return
	}

	rep, err := h.availability.FullyBooked(r.Context(), year, from, to)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ServeResource GET /api/v1/resources/{name}/availability/{year}?start&end
func (h *AvailabilityHandler) ServeResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/resources/")
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] != "availability" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", parts[2]))
		return
	}
	from, to, ok := h.window(w, r, year)
	if !ok {
		return
	}

	rep, err := h.availability.ResourceRange(r.Context(), parts[0], year, from, to)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// window start/end 查询参数，缺省覆盖全年
func (h *AvailabilityHandler) window(w http.ResponseWriter, r *http.Request, year int) (time.Time, time.Time, bool) {
	from, err := parseDateParam(r, "start", time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, time.Time{}, false
	}
	to, err := parseDateParam(r, "end", time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *AvailabilityHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMatrixUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, snapshot.ErrDateNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnknownResource):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("availability query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
