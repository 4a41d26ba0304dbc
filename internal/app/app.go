package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const banner = `
     _
  __| | ___ _ __ ___   ___
 / _' |/ _ \ '_ ' _ \ / _ \
| (_| |  __/ | | | | | (_) |
 \__,_|\___|_| |_| |_|\___/
`

func New(cfg Config, log *logrus.Logger) *App {
	return &App{cfg: cfg, log: log}
}

type App struct {
	cfg Config
	log *logrus.Logger

	startedAt time.Time
	stopApp   context.CancelFunc
	g         *errgroup.Group
}

// Run binds the listener and starts serving in the background. It
// returns as soon as the server accepts connections, so the caller's
// startup report covers bind time only. Wait blocks until shutdown.
func (a *App) Run() error {
	ln, err := net.Listen("tcp", a.cfg.NetAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.NetAddress, err)
	}

	a.startedAt = time.Now()

	stopSignal := make(chan os.Signal, 1)
	signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	ctx, stopApp := context.WithCancel(context.Background())
	a.stopApp = stopApp

	s := http.Server{Handler: a.routes()}

	g, ctx := errgroup.WithContext(ctx)
	a.g = g

	g.Go(func() error {
		a.log.Infof("listen on %s", ln.Addr())
		if err := s.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server failed: %w", err)
		}

		a.log.Info("http server stopped")

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutdown http server")

		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), a.cfg.HTTPServerShutdownTimeout)
		defer timeoutCancel()

		if err := s.Shutdown(timeoutCtx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}

		return nil
	})

	go func() {
		<-stopSignal
		stopApp()
	}()

	return nil
}

// Wait blocks until the server has shut down.
func (a *App) Wait() error {
	defer a.stopApp()

	if err := a.g.Wait(); err != nil {
		return fmt.Errorf("failed to wait errgroup: %w", err)
	}

	return nil
}

func (a *App) Banner() string {
	return strings.Trim(banner, "\n")
}

func (a *App) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/ping", a.ping)
	r.Get("/status", a.status)

	return r
}

func (a *App) ping(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("pong"))
}

func (a *App) status(w http.ResponseWriter, r *http.Request) {
	responseBody := struct {
		Uptime string `json:"uptime"`
	}{
		Uptime: time.Since(a.startedAt).Round(time.Millisecond).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(responseBody); err != nil {
		a.log.Errorf("failed to encode response body: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
