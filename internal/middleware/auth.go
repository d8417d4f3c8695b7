package middleware

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/promisenxu/sudoku-server/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// Auth attaches player claims from the auth/sign cookie pair to the
// request context. Requests without a valid pair stay anonymous; expired
// or garbled cookies are cleared.
func Auth(log *logrus.Logger, cookies *config.Cookies) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cookies.Enabled() {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				cookies.Clear(w)
				h.ServeHTTP(w, r)
				return
			}
			if err := cookies.Issue(w, claims); err != nil {
				log.Error("unable to refresh player cookies: ", err)
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PlayerClaims extracts claims attached by [Auth], if any.
func PlayerClaims(r *http.Request) (*config.PlayerClaims, bool) {
	claims, ok := r.Context().Value(CtxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
