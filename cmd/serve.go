package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/crm"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for the lead collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, st, err := initService(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
			AllowedHeaders: []string{"Content-Type"},
		}))
		mountRoutes(r, svc)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func mountRoutes(r chi.Router, svc *crm.Service) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/leads", func(w http.ResponseWriter, req *http.Request) {
		leads, err := svc.Leads(req.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		q := req.URL.Query()
		filter := crm.Filter{
			Search: q.Get("search"),
			Status: model.LeadStatus(q.Get("status")),
		}
		if q.Has("saved") {
			saved := q.Get("saved") == "true"
			filter.Saved = &saved
		}
		writeJSON(w, http.StatusOK, filter.Apply(leads))
	})

	r.Post("/api/generate", func(w http.ResponseWriter, req *http.Request) {
		var body pipeline.GenerateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, eris.New("invalid request body"))
			return
		}
		merged, err := svc.Generate(req.Context(), body)
		if err != nil {
			if eris.Is(err, pipeline.ErrValidation) {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, merged)
	})

	r.Patch("/api/leads/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Status model.LeadStatus `json:"status"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, eris.New("invalid request body"))
			return
		}
		if err := svc.SetStatus(req.Context(), chi.URLParam(req, "id"), body.Status); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": string(body.Status)})
	})

	r.Post("/api/leads/{id}/save", func(w http.ResponseWriter, req *http.Request) {
		saved, err := svc.ToggleSave(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"is_saved": saved})
	})

	r.Get("/api/notifications", func(w http.ResponseWriter, req *http.Request) {
		res, err := svc.SweepNotifications(req.Context(), nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"notifications": res.New,
			"overdue":       res.Overdue,
			"due_today":     res.DueToday,
			"summary":       res.Summary(),
		})
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// writeServiceError maps lookup failures to 404, bad input to 400 and
// everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if eris.Is(err, crm.ErrLeadNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if eris.Is(err, crm.ErrInvalidStatus) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}
