package http

import (
	"net/http"

	applog "grana/internal/log"

	"github.com/shopspring/decimal"
)

type balanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	balance, err := s.ledger.TotalBalance(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "balance computation failed", applog.FieldError, err)
		InternalServerError("could not compute balance").Write(w)
		return
	}
	income, err := s.ledger.IncomeTotal(ctx)
	if err != nil {
		InternalServerError("could not compute balance").Write(w)
		return
	}
	expenses, err := s.ledger.ExpenseTotal(ctx)
	if err != nil {
		InternalServerError("could not compute balance").Write(w)
		return
	}
	NewResponse().Payload(balanceResponse{Balance: balance, Income: income, Expenses: expenses}).Write(w)
}

func (s *Server) handleRecurringSummary(w http.ResponseWriter, r *http.Request) {
	if summary, ok := s.summaryCache.Get(summaryKey); ok {
		NewResponse().Payload(summary).Write(w)
		return
	}
	summary, err := s.ledger.RecurringExpenses(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "recurring summary failed", applog.FieldError, err)
		InternalServerError("could not compute recurring summary").Write(w)
		return
	}
	s.summaryCache.Set(summaryKey, summary)
	NewResponse().Payload(summary).Write(w)
}

func (s *Server) handleRecurringDetails(w http.ResponseWriter, r *http.Request) {
	if details, ok := s.detailsCache.Get(detailsKey); ok {
		NewResponse().Payload(details).Write(w)
		return
	}
	details, err := s.ledger.RecurringExpenseDetails(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "recurring details failed", applog.FieldError, err)
		InternalServerError("could not compute recurring details").Write(w)
		return
	}
	s.detailsCache.Set(detailsKey, details)
	NewResponse().Payload(details).Write(w)
}

type recurringIncomeResponse struct {
	MonthlyTotal decimal.Decimal `json:"monthlyTotal"`
}

func (s *Server) handleRecurringIncome(w http.ResponseWriter, r *http.Request) {
	if total, ok := s.incomeCache.Get(incomeKey); ok {
		NewResponse().Payload(recurringIncomeResponse{MonthlyTotal: total}).Write(w)
		return
	}
	total, err := s.ledger.MonthlyRecurringIncome(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "recurring income failed", applog.FieldError, err)
		InternalServerError("could not compute recurring income").Write(w)
		return
	}
	s.incomeCache.Set(incomeKey, total)
	NewResponse().Payload(recurringIncomeResponse{MonthlyTotal: total}).Write(w)
}
