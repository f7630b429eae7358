package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"grana/internal/cache"
	"grana/internal/core"
	applog "grana/internal/log"
	"grana/internal/middleware/security"
	"grana/internal/middleware/trace"
	"grana/internal/services"
	"grana/internal/store"

	"github.com/shopspring/decimal"
)

// Options tunes the server's rate limiting and summary caching. Zero values
// fall back to the defaults below.
type Options struct {
	RateLimitPerMinute int
	CacheTTL           time.Duration
	CacheSize          int
}

const (
	defaultRateLimit = 60
	defaultCacheTTL  = 30 * time.Second
	defaultCacheSize = 64
)

func (o Options) withDefaults() Options {
	if o.RateLimitPerMinute <= 0 {
		o.RateLimitPerMinute = defaultRateLimit
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = defaultCacheTTL
	}
	if o.CacheSize <= 0 {
		o.CacheSize = defaultCacheSize
	}
	return o
}

// Cache keys for the recurring aggregates. Each cache holds one entry; the
// LRU capacity exists for the shared janitor and future per-filter keys.
const (
	summaryKey = "recurring-expenses"
	detailsKey = "recurring-details"
	incomeKey  = "recurring-income"
)

type Server struct {
	http.Server

	ledger  *services.Ledger
	interp  *services.Interpreter
	logger  *applog.Logger
	limiter *rateLimiter

	summaryCache *cache.LRU[core.RecurringSummary]
	detailsCache *cache.LRU[[]core.RecurringExpenseDetail]
	incomeCache  *cache.LRU[decimal.Decimal]

	shutdownOnce sync.Once
}

// NewServer configures routes, rate limiting and the summary caches,
// returning a ready-to-run server.
func NewServer(addr string, ledger *services.Ledger, interp *services.Interpreter, logger *applog.Logger, opts Options) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	opts = opts.withDefaults()

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: trace.Middleware(clientIP)(security.Middleware(security.DefaultHeadersConfig())(mux)),
		},
		ledger:       ledger,
		interp:       interp,
		logger:       logger.WithComponent(applog.ComponentHTTP),
		limiter:      newRateLimiter(opts.RateLimitPerMinute),
		summaryCache: cache.NewLRU[core.RecurringSummary](opts.CacheSize, opts.CacheTTL),
		detailsCache: cache.NewLRU[[]core.RecurringExpenseDetail](opts.CacheSize, opts.CacheTTL),
		incomeCache:  cache.NewLRU[decimal.Decimal](opts.CacheSize, opts.CacheTTL),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/wallets", s.handleListWallets)
	mux.HandleFunc("GET /api/users", s.handleListUsers)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/recurring/{id}", s.handleDeleteRecurring)

	mux.HandleFunc("GET /api/summary/balance", s.handleBalance)
	mux.HandleFunc("GET /api/summary/recurring", s.handleRecurringSummary)
	mux.HandleFunc("GET /api/summary/recurring/details", s.handleRecurringDetails)
	mux.HandleFunc("GET /api/summary/recurring/income", s.handleRecurringIncome)

	mux.HandleFunc("POST /api/transfers", s.handleTransfer)

	mux.HandleFunc("GET /api/investments", s.handleListInvestments)
	mux.HandleFunc("POST /api/investments", s.handleCreateInvestment)
	mux.HandleFunc("PUT /api/investments/{id}", s.handleUpdateInvestment)
	mux.HandleFunc("POST /api/investments/{id}/movements", s.handleInvestmentMovement)

	mux.HandleFunc("POST /api/chat/parse", s.handleChatParse)
	mux.HandleFunc("POST /api/chat/commit", s.handleChatCommit)

	return s
}

// Caches exposes the summary caches for the expiry janitor.
func (s *Server) Caches() []cache.Cleaner {
	return []cache.Cleaner{s.summaryCache, s.detailsCache, s.incomeCache}
}

// Shutdown stops the rate limiter's cleanup goroutine and then the HTTP
// server itself.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// allowMutation enforces the per-IP rate limit on mutating requests. On a
// limit hit it writes the 429 response and returns false.
func (s *Server) allowMutation(w http.ResponseWriter, r *http.Request) bool {
	ip := clientIP(r)
	if s.limiter.allow(ip) {
		return true
	}
	s.logger.WarnContext(r.Context(), "rate limit exceeded",
		applog.FieldClientIP, ip,
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	TooManyRequestsError().Write(w)
	return false
}

// invalidateSummaries drops the cached recurring aggregates. Called after
// every ledger mutation; recomputation happens lazily on the next read.
func (s *Server) invalidateSummaries() {
	s.summaryCache.Delete(summaryKey)
	s.detailsCache.Delete(detailsKey)
	s.incomeCache.Delete(incomeKey)
}

// writeLedgerError maps a ledger failure onto the API error shape: missing
// records are 404, everything else a mutation can report is a validation
// problem and maps to 422.
func writeLedgerError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		NotFoundError("record not found").Write(w)
		return
	}
	UnprocessableEntityError(err.Error()).Write(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ledger.Categories(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "readiness check failed", applog.FieldError, err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
