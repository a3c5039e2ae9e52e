package middleware

import (
	"net/http"

	"github.com/camrado/pritok/internal/apperror"
	"github.com/camrado/pritok/internal/ctxkeys"
	"github.com/camrado/pritok/internal/respond"
	"github.com/camrado/pritok/internal/service"
)

// RequireAuth resolves the bearer token on every request and puts the
// account and the presented token into the context. Requests without a
// resolvable token never reach the handler.
func RequireAuth(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, token, err := authService.ResolveBearer(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, err)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithToken(ctx, token)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireVerified gates feature routes behind email verification. It
// must run after RequireAuth.
func RequireVerified(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil || !user.IsVerified {
			respond.Error(w, apperror.VerificationRequired("you need to verify your account before accessing these features"))
			return
		}

		next(w, r)
	}
}
