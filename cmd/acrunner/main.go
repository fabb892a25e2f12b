package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"acrunner/internal/cli/repl"
	clistate "acrunner/internal/cli/state"
	"acrunner/internal/config"
	"acrunner/internal/ingest"
	"acrunner/internal/judge/event"
	"acrunner/internal/judge/runner"
	"acrunner/internal/judge/service"
	"acrunner/internal/problem/state"
	"acrunner/pkg/utils/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConfigPath      = "configs/acrunner.yaml"
	defaultHistoryFile     = ".acrunner/history"
	listenHost             = "127.0.0.1"
	defaultShutdownTimeout = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	workspace := flag.String("workspace", "", "Override workspace root")
	port := flag.Int("port", 0, "Override listener port")
	headless := flag.Bool("headless", false, "Serve the listener without the interactive prompt")
	flag.Usage = usage
	flag.Parse()

	fileSettings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return 1
	}
	overrides := config.Overrides{WorkspaceRoot: *workspace, Port: *port}
	settings := overrides.Apply(fileSettings)

	switch flag.Arg(0) {
	case "":
	case "send":
		return sendCommand(settings, flag.Args()[1:])
	case "status":
		return statusCommand(settings)
	default:
		usage()
		return 2
	}

	if err := logger.Init(settings.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	workspaceRoot, err := settings.ResolveWorkspaceRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	overrides.WorkspaceRoot = workspaceRoot
	store := config.NewStore(*configPath, fileSettings)
	store.SetOverrides(overrides)
	settings = store.Get()

	holder := state.NewHolder()
	statePath := config.ResolvePath(workspaceRoot, settings.StateFilePath)
	restoreProblem(holder, statePath)
	defer saveProblem(holder, statePath)

	hub := event.NewHub()
	runService := service.NewRunService(runner.NewProcessRunner(), holder, store, hub)
	ingestService := ingest.NewService(holder, store, hub, runService)
	controller := ingest.NewController(ingestService, holder, hub)

	if settings.Logger.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	addr := net.JoinHostPort(listenHost, strconv.Itoa(settings.Port))
	httpServer := ingest.NewHTTPServer(addr, ingest.NewRouter(controller))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(gctx, "listener started", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listener on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancelShutdown()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "listener shutdown failed", zap.Error(err))
		}
		return nil
	})
	if *headless {
		fmt.Fprintf(os.Stderr, "acrunner listening on %s\n", addr)
	} else {
		g.Go(func() error {
			defer cancel()
			events, unsubscribe := hub.Subscribe(256)
			defer unsubscribe()
			session := repl.New(runService, holder, store, os.Stdout)
			return session.Run(gctx, events, config.ResolvePath(workspaceRoot, defaultHistoryFile))
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func restoreProblem(holder *state.Holder, path string) {
	snap, ok, err := clistate.Load(path)
	if err != nil {
		logger.Warn(context.Background(), "ignore unreadable state file", zap.String("path", path), zap.Error(err))
		return
	}
	if ok {
		holder.Set(snap.Problem)
		logger.Info(context.Background(), "restored last problem",
			zap.String("name", snap.Problem.Name),
			zap.Time("saved_at", snap.SavedAt),
		)
	}
}

func saveProblem(holder *state.Holder, path string) {
	problem, ok := holder.Get()
	if !ok {
		return
	}
	if err := clistate.Save(path, problem); err != nil {
		logger.Warn(context.Background(), "save state file failed", zap.String("path", path), zap.Error(err))
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: acrunner [flags]                  start the listener and prompt\n")
	fmt.Fprintf(out, "       acrunner [flags] send <file.json>  post a saved Competitive Companion payload\n")
	fmt.Fprintf(out, "       acrunner [flags] status            print the listener's current problem\n")
	flag.PrintDefaults()
}
