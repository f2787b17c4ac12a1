package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/crosswalk/internal/app"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/config"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/crosswalk/internal/terminal"
)

var version = "dev"

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Config file (TOML or YAML); defaults to $"+config.EnvConfigPath)
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("crosswalk", version)
		return
	}

	if err := run(*configPath); err != nil {
		log.SetFlags(0)
		log.Fatalf("crosswalk: %v", err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.FromConfig(cfg.Logging))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	input, err := terminal.Open(cfg.Input.Device)
	if err != nil {
		return fmt.Errorf("failed to open input device: %w", err)
	}
	// Restores the terminal mode on every exit path; closing twice is harmless
	defer input.Close()

	a, err := app.New(cfg, logger, input, os.Stdout)
	if err != nil {
		return err
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	fmt.Fprintln(os.Stdout, "crosswalk running: press any key to cross, q to quit")
	if err := a.Run(ctx); err != nil {
		logger.Error("Crosswalk failed", zap.Error(err))
		return err
	}
	return nil
}
