package app

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeonardoBeccarini/agri_dashboard/internal/model/entities"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/services/command"
	"github.com/LeonardoBeccarini/agri_dashboard/internal/simulation"
)

type Config struct {
	HTTPTimeout time.Duration
	Gatherer    prometheus.Gatherer // default prometheus.DefaultGatherer
	Checks      []Check             // dipendenze opzionali per /healthz e /readyz
	Logger      *log.Logger
}

// Engine is the read side the gateway renders from.
type Engine interface {
	Snapshot() simulation.Snapshot
	Series(id string) ([]entities.Sample, bool)
}

type Gateway struct {
	cfg      Config
	engine   Engine
	commands *command.Handler
}

func NewGateway(cfg Config, engine Engine, commands *command.Handler) *Gateway {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 5 * time.Second
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	return &Gateway{cfg: cfg, engine: engine, commands: commands}
}

// Routes wires every endpoint on a fresh mux.
func (g *Gateway) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", g.HandleHealth)
	mux.HandleFunc("GET /readyz", g.HandleReady)
	mux.Handle("GET /metrics", promhttp.HandlerFor(g.cfg.Gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /api/dashboard", g.HandleDashboard)
	mux.HandleFunc("GET /api/plots", g.HandlePlots)
	mux.HandleFunc("GET /api/plots/{id}/series", g.HandleSeries)
	mux.HandleFunc("GET /api/recommendations", g.HandleRecommendations)

	mux.HandleFunc("POST /api/selection", g.HandleSelection)
	mux.HandleFunc("POST /api/events/rain", g.HandleRain)
	mux.HandleFunc("POST /api/events/irrigation", g.HandleIrrigation)
	mux.HandleFunc("POST /api/events/reset", g.HandleReset)

	return g.logRequests(http.TimeoutHandler(mux, g.cfg.HTTPTimeout, "timeout"))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (g *Gateway) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		g.cfg.Logger.Printf("%s %s -> %d [%dms]", r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds())
	})
}
