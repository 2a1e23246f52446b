package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"tattler-go/config"
	"tattler-go/db"
	"tattler-go/middlewares"
	"tattler-go/onebot"
	"tattler-go/slogger"
)

// Version information (can be overridden at build time)
var (
	ProgramName = "tattler-go"
	Version     = "0.1.0"
	BuildDate   = "unknown"
	GitCommit   = "unknown"
)

// BuildInfo returns the current build information
func BuildInfo() string {
	return fmt.Sprintf("Version: %s, Built: %s, Commit: %s", Version, BuildDate, GitCommit)
}

func printVersionInfo() {
	fmt.Printf("%s version %s\n", ProgramName, Version)
	fmt.Printf("Built with %s on %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Printf("Build date: %s\n", BuildDate)
	fmt.Printf("Git commit: %s\n", GitCommit)
}

var logger = slogger.New("main")

func main() {
	// Define command line flags
	var (
		showVersion bool
		configPath  string
	)

	// Set up command line flags
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.Parse()

	// Check if version flag is provided
	if showVersion {
		printVersionInfo()
		return
	}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slogger.SetLevel(cfg.App.LogLevel)
	logger.Info("Configuration loaded successfully:")

	if cfg.App.Debug {
		logger.Info("Debug mode is enabled",
			slog.Any("Config", cfg))
	}

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start a goroutine to handle shutdown signals
	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		logger.Info("Initiating graceful shutdown...")
		cancel() // Cancel the context to signal all components to stop
	}()

	// redis
	redis := db.NewRedis(ctx, &cfg.Redis)
	defer redis.Close()

	// onebot
	bot := onebot.NewClient(&cfg.OneBot)
	defer bot.Stop()
	api := onebot.NewAPI(ctx, &cfg.OneBot, cfg.App.Debug)

	mctx := middlewares.NewMiddlewareContext(ctx, bot, api, cfg, redis)
	defer mctx.Close()

	root := middlewares.NewRootMiddleware(mctx)
	root.AddMiddlewares(
		middlewares.NewLogMsgMiddleware,
		middlewares.NewNoticeMiddleware,
		middlewares.NewSpotCheckMiddleware,
		middlewares.NewPatrolMiddleware,
	)
	if err := root.Start(); err != nil {
		logger.Error("Failed to start middlewares", slog.Any("error", err))
		return
	}
	defer root.Stop()

	bot.Start(ctx)

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("Context cancelled, shutting down...")

	// Give components time to shut down gracefully
	time.Sleep(2 * time.Second)
	logger.Info("Shutdown complete")
}
