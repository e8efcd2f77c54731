package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/SyllabusQA/internal/adapter/utils"
	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/handlers"
	"github.com/akolanti/SyllabusQA/internal/middleware"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("Server")
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

// RegisterRoutes mounts the api on the shared router and returns it.
func RegisterRoutes(h *handlers.Handler) http.Handler {
	r := utils.GetRouter()

	r.Router.Get("/health", handlers.GetHandler)
	r.Router.Route("/api", func(api chi.Router) {
		api.Get("/classes", middleware.Wrap(h.ClassesHandler))
		api.Get("/subjects", middleware.Wrap(h.SubjectsHandler))
		api.Post("/select", middleware.Wrap(h.SelectHandler))
		api.Post("/ask", middleware.Wrap(h.AskHandler))
		api.Get("/status", middleware.Wrap(h.StatusHandler))
		api.Get("/history", middleware.Wrap(h.GetHistoryHandler))
		api.Delete("/history", middleware.Wrap(h.ClearHistoryHandler))
	})
	return r.Router
}

func CreateServer(listenAddr string, h *handlers.Handler) {
	server = &http.Server{
		Addr:         listenAddr,
		Handler:      RegisterRoutes(h),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "error", err)
			}
		}
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
