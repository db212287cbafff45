package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"bookfind/internal/catalog"
	"bookfind/internal/config"
	"bookfind/internal/debounce"
	"bookfind/internal/logger"
	"bookfind/internal/metrics"
	"bookfind/internal/render"
	"bookfind/internal/search"
	"bookfind/internal/shell"
	"bookfind/internal/tui"
)

func main() {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to config file (default $BOOKFIND_CONFIG or bookfind.yaml)")
	lineMode := flag.Bool("shell", false, "line-mode shell instead of the full-screen UI")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: bookfind [-config path] [-shell] [words...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	oneShot := strings.TrimSpace(strings.Join(flag.Args(), " "))
	fullScreen := oneShot == "" && !*lineMode

	closer, err := logger.Setup(logger.Options{
		Level:   cfg.Log.Level,
		Path:    cfg.Log.Path,
		JSON:    cfg.Log.JSON,
		Discard: fullScreen,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Port > 0 {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Address(), logrus.StandardLogger()); err != nil {
				logrus.WithError(err).Error("metrics.serve")
			}
		}()
	}

	client, err := catalog.New(cfg.Catalog)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	ctrl := search.NewController(client, debounce.New(cfg.Debounce.QuietPeriod, cfg.Debounce.MinLength))
	renderer := render.New(cfg.Render.DescriptionLimit)

	logrus.WithFields(logrus.Fields{
		"catalog": cfg.Catalog.URL,
		"quiet":   cfg.Debounce.QuietPeriod,
	}).Debug("bookfind.start")

	switch {
	case oneShot != "":
		// default SIGINT handling while the single request runs
		stop()
		shell.New(ctrl, renderer, os.Stdout, os.Stderr).Query(oneShot)
		ctrl.Close()
	case *lineMode:
		if err := shell.New(ctrl, renderer, os.Stdout, os.Stderr).Run(); err != nil {
			logrus.WithError(err).Error("shell")
			os.Exit(1)
		}
	default:
		if err := tui.Run(tui.New(ctrl, renderer)); err != nil {
			fmt.Fprintf(os.Stderr, "bookfind: %v\n", err)
			os.Exit(1)
		}
	}
}
