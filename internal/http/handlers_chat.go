package http

import (
	"context"
	"errors"
	"net/http"

	applog "grana/internal/log"
	"grana/internal/services"
)

// parseHint is the corrective example returned when chat input has no
// recognizable amount.
const parseHint = `Tente algo como "gastei 50 reais no supermercado"`

type parseRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChatParse(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var req parseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	categories, err := s.ledger.Categories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "category listing failed", applog.FieldError, err)
		InternalServerError("could not load categories").Write(w)
		return
	}
	draft, err := s.interp.Parse(r.Context(), req.Message, categories)
	switch {
	case errors.Is(err, services.ErrUnparseable):
		ErrorResponseWithHint(http.StatusUnprocessableEntity, "could not understand the message", parseHint).Write(w)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client gave up while the interpreter delay was pending.
		return
	case err != nil:
		s.logger.ErrorContext(r.Context(), "parse failed", applog.FieldError, err)
		InternalServerError("could not parse the message").Write(w)
		return
	}
	s.logger.InfoContext(r.Context(), "chat message parsed",
		applog.FieldOperation, applog.OpParse,
		applog.FieldNature, string(draft.Nature),
		applog.FieldAmount, draft.Amount.String())
	NewResponse().Payload(draft).Write(w)
}

type commitRequest struct {
	services.Draft
	WalletID string `json:"walletId"`
	UserID   string `json:"userId"`
}

func (s *Server) handleChatCommit(w http.ResponseWriter, r *http.Request) {
	if !s.allowMutation(w, r) {
		return
	}
	var req commitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	added, err := s.ledger.CommitDraft(r.Context(), req.Draft, req.WalletID, req.UserID)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	s.invalidateSummaries()
	NewResponse().Status(http.StatusCreated).Payload(added).Write(w)
}
