// Package httpapi 预订可用性服务的 HTTP 边界层
package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterAvailabilityRoutes 可用性查询路由
func (r *Router) RegisterAvailabilityRoutes(h *AvailabilityHandler) {
	// /api/v1/availability/{year}/{month-day} | {year}/range | {year}/fully-booked
	r.Handle("/api/v1/availability/", h.ServeHTTP)
	// /api/v1/resources/{name}/availability/{year}
	r.Handle("/api/v1/resources/", h.ServeResource)
}

// RegisterReconcileRoutes 对账路由
func (r *Router) RegisterReconcileRoutes(h *ReconcileHandler) {
	// POST /api/v1/reconcile/{year}
	r.Handle("/api/v1/reconcile/", h.ServeHTTP)
}

// RegisterLeadsRoutes 场地询价路由
func (r *Router) RegisterLeadsRoutes(h *LeadsHandler) {
	r.Handle("/api/v1/leads/outcomes", h.Outcomes)
}

// RegisterBookingRoutes 预订登记路由
func (r *Router) RegisterBookingRoutes(h *BookingHandler) {
	r.Handle("/api/v1/bookings/plan", h.Plan)
}

// RegisterHealthRoutes 健康检查
func (r *Router) RegisterHealthRoutes() {
	r.Handle("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
