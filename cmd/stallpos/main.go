package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openkiosk/stallpos/config"
	"github.com/openkiosk/stallpos/internal/adminapi"
	"github.com/openkiosk/stallpos/internal/app"
	"github.com/openkiosk/stallpos/internal/ordering"
	"github.com/openkiosk/stallpos/internal/payment"
	"github.com/openkiosk/stallpos/internal/posapi"
	"github.com/openkiosk/stallpos/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	x        = flag.Bool("x", false, "drop and recreate the database schema, then exit")
	conffile = flag.String("c", "stallpos.yml", "config file")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	if err := cfg.InitDirs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer application.Release()

	if *x {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	db := application.DB()
	cat := application.Catalog()
	orderSvc := ordering.NewService(db, cat, application)
	ledger := ordering.NewLedger(db)
	matcher := payment.NewMatcher(db)

	ws := webserver.NewWebServer(cfg)
	posapi.NewHandler(cat, orderSvc, ledger, matcher).Register(ws)
	adminapi.NewHandler(ledger, cat).Register(ws)

	errCh := make(chan error, 1)
	go func() {
		errCh <- ws.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.S().Errorf("web server stopped: %v", err)
	case sig := <-sigCh:
		zap.S().Infof("received signal %s, shutting down", sig)
		_ = ws.Shutdown()
	}
}
