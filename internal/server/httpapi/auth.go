package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dsmirnov/stockfolio/internal/common"
	"github.com/dsmirnov/stockfolio/internal/server/services"
)

type contextKey string

const identityKey contextKey = "identity"

// identityFrom returns the authenticated identity stored by requireAuth.
func identityFrom(ctx context.Context) (*services.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*services.Identity)
	return id, ok
}

// requireAuth guards a route with bearer-token verification. The
// Authorization header must carry the literal prefix "Bearer " (case
// sensitive, single space); anything else is rejected before the token is
// even parsed. Token failures all surface as 401, only the log tells the
// expired/malformed/forged cases apart. A valid token whose subject no
// longer exists is 404, not 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		token := header[len(common.BearerPrefix):]
		if token == "" {
			writeMessage(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		identity, err := s.users.VerifySession(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrTokenExpired),
				errors.Is(err, common.ErrTokenSignatureInvalid),
				errors.Is(err, common.ErrTokenMalformed):
				s.logger.Warn(r.Context(), "session rejected", "reason", err.Error())
				writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
			case errors.Is(err, common.ErrorNotFound):
				writeMessage(w, http.StatusNotFound, "User not found")
			default:
				s.logger.Error(r.Context(), "session verification failed", "error", err.Error())
				writeMessage(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
