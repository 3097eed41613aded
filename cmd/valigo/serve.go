package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/reoring/valigo/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve --schema schema.yaml",
	Short: "Serve a validation endpoint for the schema",
	Long: `Starts an HTTP server exposing POST /v1/validate for the compiled
schema, plus /healthz and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schemaPath, _ := cmd.Flags().GetString("schema")
		addr, _ := cmd.Flags().GetString("addr")
		s, err := loadSchema(schemaPath)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		collector := middleware.NewCollector(reg)
		logger := log.Logger

		r := chi.NewRouter()
		r.Use(chimw.RequestID)
		r.Use(chimw.Recoverer)
		r.Use(requestLogger)

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		validate := middleware.ValidateJSON(s, middleware.Options{
			Logger:  &logger,
			Metrics: collector,
		})
		r.With(validate).Post("/v1/validate", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"valid":true}`))
		})

		log.Info().Str("addr", addr).Str("schema", schemaPath).Msg("listening")
		srv := &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		}
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("schema", "schema.yaml", "Schema definition file (YAML or JSON)")
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
