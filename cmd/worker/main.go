package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runwayhq/runway/internal/setup"
	"github.com/runwayhq/runway/internal/worker/round"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v3"
)

// RoundWorker closes voting rounds whose window has ended.
const RoundWorker = "round"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "worker",
		Usage: "Start runway background workers",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Value:   1,
				Usage:   "Number of workers to start",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  RoundWorker,
				Usage: "Start round expiry workers",
				Action: func(ctx context.Context, c *cli.Command) error {
					runWorkers(ctx, c.Int("workers"))
					return nil
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// runWorkers starts the requested number of round workers and blocks until
// they all stop.
func runWorkers(ctx context.Context, count int64) {
	app, err := setup.InitializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup(ctx)

	if delay := app.Config.Worker.StartupDelay; delay > 0 {
		time.Sleep(time.Duration(delay) * time.Millisecond)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Cancel worker contexts on interrupt
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		cancel()
	}()

	var wg conc.WaitGroup
	for range count {
		wg.Go(func() {
			round.New(app, app.Logger).Start(ctx)
		})
	}

	log.Printf("Started %d round workers", count)
	wg.Wait()
	log.Println("All workers have finished. Exiting.")
}
