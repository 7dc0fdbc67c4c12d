package middleware

import (
	"context"
	"net/http"

	"portfolio_pro/internal/common"
	"portfolio_pro/internal/common/security"
	"portfolio_pro/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UserIDCtxKey    contextKey = "userID"
	UserRoleCtxKey  contextKey = "userRole"
	UserEmailCtxKey contextKey = "userEmail"
)

// Authenticator rejects requests whose token is missing, mis-signed, expired,
// or issued for another issuer/audience, and stashes the identity claims in
// the request context. Anything that fails here is unauthenticated — business
// code never sees a bad token.
func Authenticator(tokens *security.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			if err := tokens.ValidateClaims(claims); err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
				return
			}

			userID, err := security.GetUserIDFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			userRole, err := security.GetUserRoleFromClaims(claims)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
				return
			}
			userEmail, _ := security.GetUserEmailFromClaims(claims)

			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			ctx = context.WithValue(ctx, UserRoleCtxKey, userRole)
			ctx = context.WithValue(ctx, UserEmailCtxKey, userEmail)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerOnly gates the singleton-owner operations. A valid identity with the
// wrong role gets 403, distinct from the 401 the Authenticator hands out.
func OwnerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(UserRoleCtxKey).(string)
		if !ok || role != model.RoleOwner {
			common.RespondWithError(w, http.StatusForbidden, "Owner access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// Helper to get user role from context
func GetUserRoleFromContext(ctx context.Context) (string, bool) {
	userRole, ok := ctx.Value(UserRoleCtxKey).(string)
	return userRole, ok
}
