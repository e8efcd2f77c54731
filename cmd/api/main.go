package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/SyllabusQA/internal/app"
	"github.com/akolanti/SyllabusQA/internal/config"
	"github.com/akolanti/SyllabusQA/internal/handlers"
	"github.com/akolanti/SyllabusQA/internal/server"
	"github.com/akolanti/SyllabusQA/pkg/logger_i"
)

var (
	listenAddr string
	configPath string
)

func main() {
	flag.StringVar(&configPath, "config", config.DefaultConfigPath, "path to the yaml settings file")
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address, overrides listen_addr from settings")
	flag.Parse()

	settings, err := app.LoadSettings(configPath)
	logger := logger_i.NewLogger("main")
	if err != nil {
		logger.Error("invalid settings", "error", err)
		os.Exit(1)
	}
	if listenAddr == "" {
		listenAddr = settings.ListenAddr
	}

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	application, err := app.Build(serviceContext, settings)
	if err != nil {
		logger.Error("could not start", "error", err)
		return
	}
	logger.Info("Starting syllabus service", "dataset_root", settings.DatasetRoot, "provider", settings.Provider)

	h := handlers.NewHandler(application.Service, application.History)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, h)

	<-stopExecution
	logger.Info("Server stopped")
}
