package main

import (
	"log"

	"github.com/sirupsen/logrus"

	startuplog "github.com/lks-go/startup-log"
	"github.com/lks-go/startup-log/internal/app"
)

func main() {
	cfg, err := app.BuildConfig()
	if err != nil {
		log.Fatalf("application starting error: %s", err)
	}

	logger := logrus.New()

	var a *app.App
	err = startuplog.Run(func() (startuplog.Application, error) {
		a = app.New(cfg, logger)
		return a, nil
	}, &startuplog.RunConfig{
		Name: "demo",
		NewLogger: func(pid string) startuplog.Logger {
			return logger.WithField("pid", pid)
		},
	})
	if err != nil {
		log.Fatalf("application starting error: %s", err)
	}

	if err := a.Wait(); err != nil {
		log.Fatalf("application error: %s", err)
	}

	log.Print("application successfully stopped")
}
