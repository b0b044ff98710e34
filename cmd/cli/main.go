package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authflow/internal/buildinfo"
	"github.com/dmitrijs2005/authflow/internal/client/cli"
	"github.com/dmitrijs2005/authflow/internal/client/config"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		log.Fatalf("%v", err)
	}

}

// run starts the client and serves it until the user exits. A setup failure
// is returned before any prompt is shown.
func run(ctx context.Context, stdout, stderr io.Writer) error {
	buildinfo.PrintBuildData(stdout)

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogBackend, cfg.LogLevel, stderr)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("start client: %w", err)
	}

	app.Run(ctx)
	return nil
}
