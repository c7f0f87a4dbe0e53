package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hoangson-hr/payday-backend-go/internal/handler/http/response"
)

// AdminOnly guards the cycle management and correction endpoints.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid access token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "ADMIN" {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
