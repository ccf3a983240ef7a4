package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/webhook"

	"github.com/atomsi7/IntensiveColearnCheckin/internal/middlewares"
	"github.com/atomsi7/IntensiveColearnCheckin/server/database"
	"github.com/atomsi7/IntensiveColearnCheckin/server/ledger"
)

func New(cfg Config) (*Server, error) {
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	l, err := restoreLedger(cfg, db)
	if err != nil {
		return nil, fmt.Errorf("failed to restore ledger: %w", err)
	}

	var webhookClient *webhook.Client
	if cfg.Notifications.Enabled {
		webhookClient, err = webhook.NewWithURL(cfg.Notifications.WebhookURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook client: %w", err)
		}
	}

	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr: cfg.Server.Addr,
			Handler: middlewares.CleanPath(
				middlewares.RateLimit(cfg.RateLimit.Every.D(), cfg.RateLimit.Burst)(mux),
			),
		},
		cfg:     cfg,
		db:      db,
		ledger:  l,
		webhook: webhookClient,
	}

	mux.HandleFunc("POST /checkins", s.Submit)
	mux.HandleFunc("GET /checkins", s.ListCheckins)
	mux.HandleFunc("GET /checkins/count", s.TotalCheckins)
	mux.HandleFunc("GET /checkins/{checkin_id}", s.GetCheckin)

	mux.HandleFunc("POST /checkins/{checkin_id}/like", s.Like)
	mux.HandleFunc("POST /checkins/{checkin_id}/meh", s.Meh)
	mux.HandleFunc("DELETE /checkins/{checkin_id}/like", s.RetractLike)
	mux.HandleFunc("DELETE /checkins/{checkin_id}/meh", s.RetractMeh)

	mux.HandleFunc("GET /participants/{address}", s.GetParticipant)
	mux.HandleFunc("GET /participants/{address}/checkins", s.ListParticipantCheckins)
	mux.HandleFunc("POST /participants/{address}/evaluate", s.BlockCheck)
	mux.HandleFunc("POST /participants/{address}/unblock", s.Unblock)

	mux.HandleFunc("POST /time/advance", s.AdvanceTime)
	mux.HandleFunc("POST /sweep", s.Sweep)

	mux.HandleFunc("GET /healthz", s.Health)

	return s, nil
}

// restoreLedger rebuilds the in-memory ledger from the database, or
// initializes a fresh one (persisting its epoch) on first boot.
func restoreLedger(cfg Config, db *database.Database) (*ledger.Ledger, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ledgerCfg := ledger.Config{
		Moderator:     cfg.Ledger.Moderator,
		DayLength:     cfg.Ledger.DayLength.D(),
		DaysPerWeek:   cfg.Ledger.DaysPerWeek,
		MissAllowance: cfg.Ledger.MissAllowance,
		MehQuorumPct:  cfg.Ledger.MehQuorumPct,
	}

	full, err := db.LoadFullState(ctx)
	if err != nil {
		if !errors.Is(err, database.ErrNoState) {
			return nil, err
		}

		l := ledger.New(ledgerCfg, ledger.SystemClock())
		if err = db.InsertLedgerState(ctx, database.LedgerState{
			Epoch:     l.Epoch(),
			LastSweep: l.LastSweep(),
		}); err != nil {
			return nil, err
		}
		slog.Info("Initialized fresh ledger", slog.Time("epoch", l.Epoch()))
		return l, nil
	}

	st := ledgerStateFromDB(full)
	l := ledger.FromState(ledgerCfg, ledger.SystemClock(), st)
	slog.Info("Restored ledger from database",
		slog.Int("participants", len(st.Participants)),
		slog.Int("checkins", len(st.Checkins)),
		slog.Int("votes", len(st.Votes)),
	)
	return l, nil
}

type Server struct {
	server  *http.Server
	cfg     Config
	db      *database.Database
	ledger  *ledger.Ledger
	webhook *webhook.Client
}

func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("err", err))
		}
	}()
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("err", err))
	}

	if err := s.db.Close(); err != nil {
		slog.Error("Database close failed", slog.Any("err", err))
	}
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
