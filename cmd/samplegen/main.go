package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekisa-team/samplegen/internal/config"
	"github.com/ekisa-team/samplegen/internal/download"
	"github.com/ekisa-team/samplegen/internal/env"
	"github.com/ekisa-team/samplegen/internal/envvar"
	"github.com/ekisa-team/samplegen/internal/export"
	"github.com/ekisa-team/samplegen/internal/families"
	"github.com/ekisa-team/samplegen/internal/logger"
	"github.com/ekisa-team/samplegen/internal/model"
	"github.com/ekisa-team/samplegen/internal/runner"
)

const hubTimeout = 10 * time.Minute

func main() {
	var (
		flagConfigPath = flag.String("config", config.DefaultConfigFile(), "Path to config file")
		flagSchemaPath = flag.String("schema", "", "Path to schema file (defaults to the bundled schema)")
		flagModelsDir  = flag.String("models-dir", "", "Directory artifacts are fetched into (overrides $SAMPLEGEN_MODELS_PATH and the config)")
		flagForce      = flag.Bool("force", false, "Refetch every artifact even if it exists")
		flagWatch      = flag.Bool("watch", false, "Keep running and refetch when the config file changes")
		flagList       = flag.Bool("list", false, "List the known model families and exit")
		flagLogFile    = flag.String("log-file", "", "Also write logs to this rotating file")
	)
	flag.Parse()

	slog.SetDefault(
		logger.New(env.FromEnv(),
			logger.WithLogToFile(*flagLogFile != ""),
			logger.WithLogFile(*flagLogFile),
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := model.NewRegistry(newTools())
	if err := families.Register(registry); err != nil {
		slog.Error("Failed to register model families", "error", err)
		os.Exit(1)
	}

	if *flagList {
		renderFamilies(os.Stdout, registry)
		return
	}

	manager := model.NewManager(registry, model.WithModelsDir(*flagModelsDir))

	if !*flagWatch {
		cfg, err := config.LoadAndValidate(*flagConfigPath, *flagSchemaPath)
		if err != nil {
			slog.Error("Failed to load config", "config", *flagConfigPath, "error", err)
			os.Exit(1)
		}

		if _, err := manager.Fetch(ctx, cfg, *flagForce); err != nil {
			slog.Error("Failed to fetch models", "error", err)
			renderInstances(os.Stdout, manager.List())
			os.Exit(1)
		}

		renderInstances(os.Stdout, manager.List())
		return
	}

	watcher, err := config.NewWatcher(*flagConfigPath, *flagSchemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}

		if _, err := manager.Fetch(ctx, cfg, false); err != nil {
			slog.Error("Failed to fetch models from config", "error", err)
			return
		}
		renderInstances(os.Stdout, manager.List())
	})
	if err != nil {
		slog.Error("Failed to create config watcher", "error", err)
		os.Exit(1)
	}
	defer watcher.Close()

	if _, err := manager.Fetch(ctx, watcher.Snapshot(), *flagForce); err != nil {
		slog.Error("Failed to fetch models from config", "error", err)
	}
	renderInstances(os.Stdout, manager.List())

	slog.Info("Watching config for changes", "config", *flagConfigPath)
	<-ctx.Done()
	slog.Info("Shutting down")
}

// newTools wires the downloaders and the exporter that are available on this host.
func newTools() model.Tools {
	token := os.Getenv(envvar.HFToken)
	router := &download.Router{
		HTTP: download.NewHTTP(&http.Client{}, download.WithHubToken(token)),
	}

	if executor, err := runner.NewExecutor("hf", hubTimeout); err == nil {
		router.Hub = download.NewHub(executor, token)
	} else {
		slog.Debug("hf CLI not found, hub files are fetched over HTTP", "error", err)
	}

	tools := model.Tools{Downloader: router}
	if executor, err := runner.NewExecutor(export.DefaultBinary, export.DefaultTimeout); err == nil {
		tools.Exporter = export.NewOptimum(executor)
	} else {
		slog.Warn("optimum-cli not found, hub models cannot be exported", "error", err)
	}

	return tools
}
