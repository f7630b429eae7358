package http

import (
	"net/http"
	"time"

	"grana/internal/core"
	applog "grana/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	transactions, err := s.ledger.FilteredTransactions(r.Context(), filters)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "transaction listing failed", applog.FieldError, err)
		InternalServerError("could not list transactions").Write(w)
		return
	}
	NewResponse().Payload(transactions).Write(w)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var t core.Transaction
	if !decodeJSON(w, r, &t) {
		return
	}
	// Omitted dates mean "now", matching the chat commit path.
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	added, err := s.ledger.AddTransaction(r.Context(), t)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateSummaries()
	NewResponse().Status(http.StatusCreated).Payload(added).Write(w)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var t core.Transaction
	if !decodeJSON(w, r, &t) {
		return
	}
	t.ID = r.PathValue("id")
	if err := s.ledger.UpdateTransaction(r.Context(), t); err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateSummaries()
	NewResponse().Payload(t).Write(w)
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	if err := s.ledger.RemoveRecurringTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateSummaries()
	NewResponse().Status(http.StatusNoContent).Write(w)
}
