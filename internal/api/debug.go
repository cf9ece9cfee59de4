package api

import (
	"net/http"
	"time"

	"vrpls/internal/buildinfo"
)

// DebugJSON reports build info and effective configuration, grounded
// on the ancestor's DebugJSON.
func (s *Server) DebugJSON(w http.ResponseWriter, r *http.Request) {
	info := map[string]any{
		"build": buildinfo.Info(),
		"time":  time.Now().UTC().Format(time.RFC3339),
		"config": map[string]any{
			"listenAddr":            s.Cfg.ListenAddr,
			"jwtMode":               s.Cfg.JWTMode,
			"iterationCap":          s.Cfg.IterationCap,
			"regretCoeff":           s.Cfg.RegretCoeff,
			"hasDatabaseUrl":        s.Cfg.DatabaseURL != "",
			"hasRedisUrl":           s.Cfg.RedisURL != "",
			"matrixCacheTtlSeconds": s.Cfg.MatrixCacheTTLSeconds,
		},
	}
	writeJSON(w, http.StatusOK, info)
}

// HealthHandler always reports ok once the process is up.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadyHandler always reports ready; it does not probe the store or
// the broker.
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
