package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kioskanalyzer/internal/domain"
	"kioskanalyzer/internal/report"
	"kioskanalyzer/internal/service"
	"kioskanalyzer/internal/store"
)

type API struct {
	service       *service.Service
	auth          *AuthManager
	allowedOrigin string
	currency      string
	loginLimiter  *attemptLimiter
	logger        *zap.Logger
}

func New(svc *service.Service, auth *AuthManager, allowedOrigin string, currency string, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = report.DefaultCurrency
	}
	return &API{
		service:       svc,
		auth:          auth,
		allowedOrigin: allowedOrigin,
		currency:      currency,
		loginLimiter:  newAttemptLimiter(5, time.Minute),
		logger:        logger,
	}
}

type attemptLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string][]time.Time
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	if max < 1 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &attemptLimiter{max: max, window: window, entries: make(map[string][]time.Time)}
}

func (l *attemptLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.entries[key]
	kept := make([]time.Time, 0, len(history)+1)
	for _, ts := range history {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.entries[key] = kept
		return false
	}
	kept = append(kept, now)
	l.entries[key] = kept
	return true
}

func clientKey(r *http.Request) string {
	host := strings.TrimSpace(r.RemoteAddr)
	if host == "" {
		return "unknown"
	}
	if addr, err := netip.ParseAddrPort(host); err == nil {
		return addr.Addr().String()
	}
	if idx := strings.LastIndex(host, ":"); idx > 0 {
		return host[:idx]
	}
	return host
}

func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealth)
	mux.HandleFunc("/api/v1/auth/login", a.handleLogin)

	mux.HandleFunc("/api/v1/document", a.requireAuth(a.handleDocument))
	mux.HandleFunc("/api/v1/inventory", a.requireAuth(a.handleInventory))
	mux.HandleFunc("/api/v1/inventory/", a.requireAuth(a.handleInventoryItem))
	mux.HandleFunc("/api/v1/purchases", a.requireAuth(a.handlePurchases))
	mux.HandleFunc("/api/v1/sales", a.requireAuth(a.handleSales))
	mux.HandleFunc("/api/v1/rent", a.requireAuth(a.handleRent))
	mux.HandleFunc("/api/v1/expenses", a.requireAuth(a.handleExpenses))
	mux.HandleFunc("/api/v1/expenses/", a.requireAuth(a.handleExpenseItem))
	mux.HandleFunc("/api/v1/report", a.requireAuth(a.handleReport))

	return a.withMiddleware(mux)
}

func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			writeError(w, http.StatusUnauthorized, errors.New("missing bearer token"))
			return
		}

		token := strings.TrimSpace(authorization[len("Bearer "):])
		actor, err := a.auth.ParseToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, err)
			return
		}

		next(w, r.WithContext(service.WithActor(r.Context(), actor)))
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}
	if !a.loginLimiter.Allow(clientKey(r)) {
		writeError(w, http.StatusTooManyRequests, errors.New("too many login attempts"))
		return
	}

	var req domain.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := a.auth.Login(req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"document": a.service.Document(r.Context())})
}

func (a *API) handleInventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"inventory": a.service.Document(r.Context()).Inventory})
	case http.MethodPost:
		var req domain.InventoryItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		item, err := a.service.AddInventoryItem(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"item": item})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleInventoryItem(w http.ResponseWriter, r *http.Request) {
	name, ok := pathTail(r, "/api/v1/inventory/")
	if !ok {
		writeError(w, http.StatusBadRequest, errors.New("item name required"))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req domain.InventoryItemRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		req.Name = name
		item, err := a.service.UpdateInventoryItem(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"item": item})
	case http.MethodDelete:
		if err := a.service.DeleteInventoryItem(r.Context(), name); err != nil {
			a.writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handlePurchases(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"purchases": a.service.Document(r.Context()).Purchases})
	case http.MethodPost:
		var req domain.PurchaseRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		purchase, err := a.service.RecordPurchase(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"purchase": purchase})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleSales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"sales": a.service.Document(r.Context()).Sales})
	case http.MethodPost:
		var req domain.SaleRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		sale, err := a.service.RecordSale(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"sale": sale})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleRent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"rent": a.service.Document(r.Context()).Rent})
	case http.MethodPut:
		var req domain.RentRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.service.SetRent(r.Context(), req.Rent); err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rent": req.Rent})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"expenses": a.service.Document(r.Context()).OtherExpenses})
	case http.MethodPost:
		var req domain.ExpenseRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		expense, err := a.service.AddExpense(r.Context(), req)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"expense": expense})
	default:
		writeMethodNotAllowed(w)
	}
}

func (a *API) handleExpenseItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMethodNotAllowed(w)
		return
	}
	tail, ok := pathTail(r, "/api/v1/expenses/")
	index, err := strconv.Atoi(tail)
	if !ok || err != nil {
		writeError(w, http.StatusBadRequest, errors.New("expense index must be a number"))
		return
	}
	if err := a.service.DeleteExpense(r.Context(), index); err != nil {
		a.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	timeframe, err := report.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rep := a.service.Report(r.Context(), timeframe)
	filename := report.ExportFilename(rep.Timeframe, rep.GeneratedAt)

	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))) {
	case "", "json":
		writeJSON(w, http.StatusOK, map[string]any{"report": rep})
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(report.CSV(rep)))
	case "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(report.Markdown(rep, a.currency)))
	case "html":
		page, err := report.HTML(rep, a.currency)
		if err != nil {
			a.writeServiceError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(page))
	default:
		writeError(w, http.StatusBadRequest, errors.New("format must be json, csv, md or html"))
	}
}

func (a *API) writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrInvalidTransaction):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateItem):
		status = http.StatusConflict
	}
	if status >= 500 {
		a.logger.Error("request failed", zap.Error(err))
	}
	writeError(w, status, err)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (a *API) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Access-Control-Allow-Origin", a.allowedOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Vary", "Origin")

		if (r.Method == http.MethodPost || r.Method == http.MethodPut) && strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		startedAt := time.Now()
		next.ServeHTTP(rec, r)
		a.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(startedAt)),
		)
	})
}

func pathTail(r *http.Request, prefix string) (string, bool) {
	raw := strings.TrimPrefix(r.URL.EscapedPath(), prefix)
	tail, err := url.PathUnescape(strings.Trim(raw, "/"))
	if err != nil {
		return "", false
	}
	tail = strings.TrimSpace(tail)
	return tail, tail != ""
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

func writeError(w http.ResponseWriter, status int, err error) {
	// 5xx details stay in the logs.
	msg := err.Error()
	if status >= 500 {
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
