package main

import (
	"context"
	"net/http"
	"os"

	"github.com/itbasis/go-clock"

	"github.com/chaigney/golftrip/internal/auth"
	"github.com/chaigney/golftrip/internal/config"
	"github.com/chaigney/golftrip/internal/editstate"
	"github.com/chaigney/golftrip/internal/email"
	"github.com/chaigney/golftrip/internal/handlers"
	"github.com/chaigney/golftrip/internal/logging"
	"github.com/chaigney/golftrip/internal/metrics"
	"github.com/chaigney/golftrip/internal/middleware"
	"github.com/chaigney/golftrip/internal/models"
	"github.com/chaigney/golftrip/internal/store"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger()

	var s store.Store
	switch cfg.StoreBackend {
	case "file":
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			logger.Error("opening file store", "error", err)
			os.Exit(1)
		}
		s = fs
		logger.Info("using file store", "dir", cfg.DataDir)
	case "firestore":
		if cfg.GCPProjectID == "" {
			logger.Error("GCP_PROJECT_ID is required for the firestore backend")
			os.Exit(1)
		}
		fs, err := store.NewFirestoreStore(context.Background(), cfg.GCPProjectID, cfg.FirestoreDB)
		if err != nil {
			logger.Error("opening firestore", "error", err)
			os.Exit(1)
		}
		defer fs.Close()
		s = fs
		logger.Info("using firestore", "project", cfg.GCPProjectID)
	default:
		s = store.NewMemoryStore()
		logger.Info("using in-memory store")
	}

	m := metrics.New()

	tracker := editstate.New(clock.New(), cfg.DebounceWindow, func(tripID string, edits []editstate.Edit) error {
		_, err := s.MutateTrip(context.Background(), tripID, func(t *models.Trip) error {
			for _, e := range edits {
				t.SetScore(e.CourseKey, e.Player, e.Hole, e.Entry)
			}
			return nil
		})
		if err != nil {
			m.FlushFailures.Inc()
			logger.Error("score flush failed", "trip", tripID, "edits", len(edits), "error", err)
			return err
		}
		m.ScoreFlushes.Inc()
		return nil
	})

	mail := email.NewSender(cfg.SMTP)
	if mail.IsConfigured() {
		logger.Info("invite email enabled", "host", cfg.SMTP.Host)
	}

	h := handlers.New(s, tracker, clock.New(), logger, m, mail, cfg)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.Handle("GET /metrics", m.Handler())

	// CORS -> request log -> auth -> routes
	handler := middleware.CORS(cfg.CORSOrigin)(
		middleware.Logging(logger)(
			auth.Middleware(cfg.RoomSecret)(mux),
		),
	)

	logger.Info("server starting", "port", cfg.Port, "cors", cfg.CORSOrigin)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
