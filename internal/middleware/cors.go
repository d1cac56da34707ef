package middleware

import (
	"net/http"

	"github.com/zhouzirui/movies/backend/pkg/utils"
)

const allowedMethods = "GET,HEAD,PUT,PATCH,POST,DELETE"

// CORS admits requests without an Origin header or whose Origin is in allowed.
// Anything else is answered with 403 before it reaches a handler.
func CORS(allowed []string) func(http.Handler) http.Handler {
	trusted := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		trusted[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := trusted[origin]; !ok {
				utils.RespondMessage(w, http.StatusForbidden, "Not allowed by CORS")
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)

			// Preflight: answer directly and stop.
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Add("Vary", "Access-Control-Request-Headers")
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				if headers := r.Header.Get("Access-Control-Request-Headers"); headers != "" {
					w.Header().Set("Access-Control-Allow-Headers", headers)
				}
				w.Header().Set("Content-Length", "0")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
