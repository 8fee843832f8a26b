package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/AlexandreTessaro/Portfolio-CatolicaSC-sub002/internal/handlers"
)

// IdentityHeader carries the caller identity set by the upstream gateway.
// This service trusts its ingress to have authenticated the request.
const IdentityHeader = "X-User-ID"

type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// Require rejects requests without a parseable caller identity and stores
// the identity in the request context for handlers.
func (m *IdentityMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.Header.Get(IdentityHeader))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}

		ctx := handlers.SetUserIDInContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
