package http

import (
	"net/http"
	"time"

	"grana/internal/core"
	applog "grana/internal/log"

	"github.com/shopspring/decimal"
)

type transferRequest struct {
	FromWalletID string          `json:"fromWalletId"`
	ToWalletID   string          `json:"toWalletId"`
	Amount       decimal.Decimal `json:"amount"`
	Date         *time.Time      `json:"date,omitempty"`
	UserID       string          `json:"userId"`
}

type transferResponse struct {
	Outgoing core.Transaction `json:"outgoing"`
	Incoming core.Transaction `json:"incoming"`
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var req transferRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	out, in, err := s.ledger.Transfer(r.Context(), req.FromWalletID, req.ToWalletID, req.Amount, date, req.UserID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateSummaries()
	NewResponse().Status(http.StatusCreated).Payload(transferResponse{Outgoing: out, Incoming: in}).Write(w)
}

func (s *Server) handleListInvestments(w http.ResponseWriter, r *http.Request) {
	categories, err := s.ledger.InvestmentCategories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "investment listing failed", applog.FieldError, err)
		InternalServerError("could not list investment categories").Write(w)
		return
	}
	NewResponse().Payload(categories).Write(w)
}

type investmentRequest struct {
	Name  string          `json:"name"`
	Goal  decimal.Decimal `json:"goal"`
	Color string          `json:"color"`
}

func (s *Server) handleCreateInvestment(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var req investmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	added, err := s.ledger.AddInvestmentCategory(r.Context(), req.Name, req.Goal, req.Color)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	NewResponse().Status(http.StatusCreated).Payload(added).Write(w)
}

func (s *Server) handleUpdateInvestment(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var req investmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// Accumulated amount is owned by movements, not by the edit form.
	existing, err := s.ledger.InvestmentCategory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	existing.Name = req.Name
	existing.Goal = req.Goal
	existing.Color = req.Color
	if err := s.ledger.UpdateInvestmentCategory(r.Context(), existing); err != nil {
		writeLedgerError(w, err)
		return
	}
	NewResponse().Payload(existing).Write(w)
}

type movementRequest struct {
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        core.TransactionType `json:"type"`
	UserID      string               `json:"userId"`
}

func (s *Server) handleInvestmentMovement(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var req movementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	updated, err := s.ledger.ApplyInvestmentMovement(r.Context(), r.PathValue("id"), req.Description, req.Amount, req.Type, req.UserID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateSummaries()
	NewResponse().Status(http.StatusCreated).Payload(updated).Write(w)
}
