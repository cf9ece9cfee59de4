// Package api implements HTTP handlers wiring the engine, store, and
// broker into a service over the optimize-run lifecycle.
package api

import (
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"vrpls/internal/auth"
	"vrpls/internal/broker"
	"vrpls/internal/config"
	"vrpls/internal/importer"
	"vrpls/internal/store"

	redis "github.com/redis/go-redis/v9"
)

// Server holds the service's collaborators. Grounded on the ancestor's
// api.Server: a store, a broker, and an auth verifier, constructed
// once at startup and threaded through every handler.
type Server struct {
	Cfg    config.Config
	Store  store.Store
	Broker broker.EventBroker
	Auth   *auth.Verifier

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter

	pendingMu sync.Mutex
	pending   map[string][]JobDTO // tenant -> jobs queued by /v1/jobs/import

	importAdapter importer.Adapter
}

// NewServer constructs a Server from cfg, selecting Postgres/Memory and
// Redis/in-process broker the way the ancestor's NewServer did based on
// DATABASE_URL/REDIS_URL.
func NewServer(cfg config.Config) (*Server, error) {
	var st store.Store
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		st = store.NewMemory()
	} else {
		pg, err := store.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st = pg
	}

	var b broker.EventBroker
	if strings.TrimSpace(cfg.RedisURL) != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err == nil {
			b = broker.NewRedis(redis.NewClient(opt))
		}
	}
	if b == nil {
		b = broker.NewMemory()
	}

	v := auth.NewVerifierFromEnv()
	v.Mode = cfg.JWTMode

	return &Server{
		Cfg:           cfg,
		Store:         st,
		Broker:        b,
		Auth:          v,
		limiters:      make(map[string]*rate.Limiter),
		pending:       make(map[string][]JobDTO),
		importAdapter: importer.CSVAdapter{},
	}, nil
}

func (s *Server) importer() importer.Adapter { return s.importAdapter }

// limiterFor returns the per-tenant token-bucket rate limiter on
// optimize requests: 2 per second with a burst of 4. It limits the
// request rate, not the number of runs in flight (spec §[MODULE] api: grounded on the
// ancestor's webhook worker MaxAttempts env-tunable pattern, here
// promoting golang.org/x/time/rate from an indirect dependency to
// direct use).
func (s *Server) limiterFor(tenant string) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	l, ok := s.limiters[tenant]
	if !ok {
		l = rate.NewLimiter(rate.Limit(2), 4)
		s.limiters[tenant] = l
	}
	return l
}

func (s *Server) takePending(tenant string) []JobDTO {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	jobs := s.pending[tenant]
	delete(s.pending, tenant)
	return jobs
}

func (s *Server) queuePendingDTO(tenant string, jobs []JobDTO) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending[tenant] = append(s.pending[tenant], jobs...)
}

func tenantOf(r *http.Request) string {
	if t := r.Header.Get("X-Tenant-Id"); t != "" {
		return t
	}
	return "t_demo"
}
