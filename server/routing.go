package server

import "net/http"

// setupHTTPRoutes configures all HTTP handlers on a dedicated mux
func (s *Server) setupHTTPRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/strings", s.corsMiddleware(s.handleStrings))          // Create (POST), list (GET), delete by value (DELETE)
	mux.HandleFunc("/api/strings/lookup", s.corsMiddleware(s.handleLookup))    // Fetch by raw value (POST)
	mux.HandleFunc("/api/strings/", s.corsMiddleware(s.handleStringByID))      // Fetch by fingerprint (GET)
	mux.HandleFunc("/api/query", s.corsMiddleware(s.handleQuery))              // Natural-language list (GET)
	mux.HandleFunc("/health", s.corsMiddleware(s.handleHealth))
	mux.HandleFunc("/ws", s.corsMiddleware(s.handleWebSocket))

	return mux
}

// corsMiddleware adds CORS headers using the configured allowed origins, the
// same origin set the WebSocket upgrade checks against
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
