package http

import (
	"net/http"

	applog "grana/internal/log"
)

// The reference tables are read-mostly lookups the client UIs use to fill
// wallet, user and category selectors.

func (s *Server) handleListWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := s.ledger.Wallets(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "wallet listing failed", applog.FieldError, err)
		InternalServerError("could not list wallets").Write(w)
		return
	}
	NewResponse().Payload(wallets).Write(w)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.ledger.Users(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "user listing failed", applog.FieldError, err)
		InternalServerError("could not list users").Write(w)
		return
	}
	NewResponse().Payload(users).Write(w)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.ledger.Categories(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "category listing failed", applog.FieldError, err)
		InternalServerError("could not list categories").Write(w)
		return
	}
	NewResponse().Payload(categories).Write(w)
}
