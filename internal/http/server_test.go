package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grana/internal/core"
	applog "grana/internal/log"
	"grana/internal/services"
	"grana/internal/store/memory"

	"github.com/shopspring/decimal"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s := memory.NewSeeded()
	logger := applog.New(applog.Config{
		Handler:   slog.NewTextHandler(io.Discard, nil),
		Component: applog.ComponentApp,
	})
	ledger := services.NewLedger(s, s, s, "3", logger)
	srv := NewServer("127.0.0.1:0", ledger, services.NewInterpreter(0), logger, opts)
	t.Cleanup(func() { srv.limiter.stop() })
	return srv
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestHealthAndReadiness(t *testing.T) {
	srv := newTestServer(t, Options{})

	if rec := doRequest(srv, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
	if rec := doRequest(srv, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}
}

func TestReferenceListings(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodGet, "/api/wallets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("wallets = %d: %s", rec.Code, rec.Body.String())
	}
	wallets := decodeBody[[]core.Wallet](t, rec)
	if len(wallets) != 3 || wallets[0].Name != "Débito" {
		t.Fatalf("unexpected wallets: %+v", wallets)
	}

	rec = doRequest(srv, http.MethodGet, "/api/users", "")
	users := decodeBody[[]core.User](t, rec)
	if len(users) != 2 || users[0].Name != "Você" {
		t.Fatalf("unexpected users: %+v", users)
	}

	rec = doRequest(srv, http.MethodGet, "/api/categories", "")
	categories := decodeBody[[]core.TransactionCategory](t, rec)
	if len(categories) != 9 {
		t.Fatalf("expected 9 seeded categories, got %d", len(categories))
	}
}

func TestListTransactions(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodGet, "/api/transactions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d: %s", rec.Code, rec.Body.String())
	}
	all := decodeBody[[]core.Transaction](t, rec)
	if len(all) != 5 {
		t.Fatalf("expected 5 seeded transactions, got %d", len(all))
	}

	rec = doRequest(srv, http.MethodGet, "/api/transactions?type=expense", "")
	expenses := decodeBody[[]core.Transaction](t, rec)
	if len(expenses) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(expenses))
	}

	if rec := doRequest(srv, http.MethodGet, "/api/transactions?type=weird", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid type filter = %d, want 400", rec.Code)
	}
}

func TestCreateTransaction(t *testing.T) {
	srv := newTestServer(t, Options{})

	body := `{"description":"Padaria","amount":"12.50","type":"expense","walletId":"1","userId":"1"}`
	rec := doRequest(srv, http.MethodPost, "/api/transactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	added := decodeBody[core.Transaction](t, rec)
	if added.ID == "" || added.Date.IsZero() {
		t.Fatalf("created transaction missing id or date: %+v", added)
	}

	// Validation failure must map to 422.
	rec = doRequest(srv, http.MethodPost, "/api/transactions", `{"description":"","amount":"10","type":"expense","walletId":"1","userId":"1"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid create = %d, want 422", rec.Code)
	}

	if rec := doRequest(srv, http.MethodPost, "/api/transactions", `{not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body = %d, want 400", rec.Code)
	}
}

func TestUpdateTransaction(t *testing.T) {
	srv := newTestServer(t, Options{})

	body := `{"description":"Netflix 4K","amount":"59.90","type":"expense","date":"2024-01-01T00:00:00Z","walletId":"2","userId":"1"}`
	rec := doRequest(srv, http.MethodPut, "/api/transactions/5", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d: %s", rec.Code, rec.Body.String())
	}

	if rec := doRequest(srv, http.MethodPut, "/api/transactions/999", body); rec.Code != http.StatusNotFound {
		t.Fatalf("update missing = %d, want 404", rec.Code)
	}
}

func TestRecurringSummaryAndInvalidation(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodGet, "/api/summary/recurring", "")
	summary := decodeBody[core.RecurringSummary](t, rec)
	if !summary.MonthlyTotal.Equal(dec(t, "1245")) {
		t.Fatalf("MonthlyTotal = %s, want 1245", summary.MonthlyTotal)
	}
	if !summary.TotalRemaining.Infinite {
		t.Fatalf("seeded Netflix is infinite, aggregate must be unbounded")
	}

	// Removing the infinite expense must be visible immediately despite the
	// summary cache.
	if rec := doRequest(srv, http.MethodDelete, "/api/transactions/recurring/5", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	rec = doRequest(srv, http.MethodGet, "/api/summary/recurring", "")
	summary = decodeBody[core.RecurringSummary](t, rec)
	if summary.TotalRemaining.Infinite {
		t.Fatalf("aggregate still unbounded after removing the infinite expense")
	}
	if !summary.MonthlyTotal.Equal(dec(t, "1200")) {
		t.Fatalf("MonthlyTotal = %s, want 1200", summary.MonthlyTotal)
	}

	rec = doRequest(srv, http.MethodGet, "/api/summary/recurring/details", "")
	details := decodeBody[[]core.RecurringExpenseDetail](t, rec)
	if len(details) != 1 || details[0].Description != "Financiamento Casa" {
		t.Fatalf("unexpected details after delete: %+v", details)
	}
}

func TestRecurringIncome(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodGet, "/api/summary/recurring/income", "")
	income := decodeBody[recurringIncomeResponse](t, rec)
	if !income.MonthlyTotal.Equal(dec(t, "3500")) {
		t.Fatalf("MonthlyTotal = %s, want 3500", income.MonthlyTotal)
	}
}

func TestBalance(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodGet, "/api/summary/balance", "")
	balance := decodeBody[balanceResponse](t, rec)
	if !balance.Balance.Equal(dec(t, "2805")) {
		t.Fatalf("Balance = %s, want 2805", balance.Balance)
	}
	if !balance.Income.Equal(dec(t, "4300")) || !balance.Expenses.Equal(dec(t, "1495")) {
		t.Fatalf("Income/Expenses = %s/%s, want 4300/1495", balance.Income, balance.Expenses)
	}
}

func TestTransfer(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodPost, "/api/transfers", `{"fromWalletId":"1","toWalletId":"2","amount":"300","userId":"1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("transfer = %d: %s", rec.Code, rec.Body.String())
	}
	result := decodeBody[transferResponse](t, rec)
	if result.Outgoing.Type != core.Expense || result.Incoming.Type != core.Income {
		t.Fatalf("unexpected legs: %+v", result)
	}
	if result.Incoming.Description != "Transferência de Débito" {
		t.Fatalf("incoming description = %q", result.Incoming.Description)
	}

	if rec := doRequest(srv, http.MethodPost, "/api/transfers", `{"fromWalletId":"1","toWalletId":"1","amount":"10","userId":"1"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("same-wallet transfer = %d, want 422", rec.Code)
	}
	if rec := doRequest(srv, http.MethodPost, "/api/transfers", `{"fromWalletId":"1","toWalletId":"99","amount":"10","userId":"1"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown-wallet transfer = %d, want 404", rec.Code)
	}
}

func TestInvestments(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodGet, "/api/investments", "")
	categories := decodeBody[[]core.InvestmentCategory](t, rec)
	if len(categories) != 3 {
		t.Fatalf("expected 3 seeded categories, got %d", len(categories))
	}

	rec = doRequest(srv, http.MethodPost, "/api/investments", `{"name":"Aposentadoria","goal":"50000","color":"bg-teal-500"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create investment = %d: %s", rec.Code, rec.Body.String())
	}
	added := decodeBody[core.InvestmentCategory](t, rec)
	if !added.Current.IsZero() {
		t.Fatalf("new category must start at zero, got %s", added.Current)
	}

	// Deposit into the seeded Viagem Europa goal (2500 accumulated).
	rec = doRequest(srv, http.MethodPost, "/api/investments/2/movements", `{"description":"Aporte","amount":"500","type":"income","userId":"1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("movement = %d: %s", rec.Code, rec.Body.String())
	}
	updated := decodeBody[core.InvestmentCategory](t, rec)
	if !updated.Current.Equal(dec(t, "3000")) {
		t.Fatalf("Current = %s, want 3000", updated.Current)
	}

	// Editing name/goal must not touch the accumulated amount.
	rec = doRequest(srv, http.MethodPut, "/api/investments/2", `{"name":"Viagem","goal":"20000","color":"bg-blue-500"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update investment = %d: %s", rec.Code, rec.Body.String())
	}
	edited := decodeBody[core.InvestmentCategory](t, rec)
	if !edited.Current.Equal(dec(t, "3000")) || edited.Name != "Viagem" {
		t.Fatalf("unexpected edited category: %+v", edited)
	}
}

func TestChatParse(t *testing.T) {
	srv := newTestServer(t, Options{})

	rec := doRequest(srv, http.MethodPost, "/api/chat/parse", `{"message":"gastei 50 reais no supermercado hoje"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("parse = %d: %s", rec.Code, rec.Body.String())
	}
	draft := decodeBody[services.Draft](t, rec)
	if draft.Description != "Supermercado" || draft.Nature != services.NatureOneTime {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if !draft.Amount.Equal(dec(t, "50")) {
		t.Fatalf("Amount = %s, want 50", draft.Amount)
	}

	rec = doRequest(srv, http.MethodPost, "/api/chat/parse", `{"message":"almoço maravilhoso"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unparseable = %d, want 422", rec.Code)
	}
	failure := decodeBody[apiError](t, rec)
	if failure.Hint == "" {
		t.Fatalf("unparseable response must carry a corrective hint")
	}
}

func TestChatCommit(t *testing.T) {
	srv := newTestServer(t, Options{})

	body := `{"amount":"55.90","description":"Netflix","categoryId":"5","type":"expense","nature":"recurring","walletId":"2","userId":"1"}`
	rec := doRequest(srv, http.MethodPost, "/api/chat/commit", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("commit = %d: %s", rec.Code, rec.Body.String())
	}
	added := decodeBody[core.Transaction](t, rec)
	if added.Recurrence == nil || !added.Recurrence.IsInfinite {
		t.Fatalf("recurring commit must carry an infinite recurrence: %+v", added.Recurrence)
	}

	ambiguous := `{"amount":"100","description":"Freelance","type":"income","nature":"ambiguous","walletId":"1","userId":"1"}`
	if rec := doRequest(srv, http.MethodPost, "/api/chat/commit", ambiguous); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("ambiguous commit = %d, want 422", rec.Code)
	}
}

func TestRateLimitOnMutations(t *testing.T) {
	srv := newTestServer(t, Options{RateLimitPerMinute: 2})

	body := `{"message":"gastei 10 no mercado"}`
	for i := 0; i < 2; i++ {
		if rec := doRequest(srv, http.MethodPost, "/api/chat/parse", body); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i+1, rec.Code)
		}
	}
	rec := doRequest(srv, http.MethodPost, "/api/chat/parse", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("429 must carry Retry-After")
	}

	// Reads stay unthrottled.
	if rec := doRequest(srv, http.MethodGet, "/api/transactions", ""); rec.Code != http.StatusOK {
		t.Fatalf("read after limit = %d", rec.Code)
	}
}
