package app

import (
	"flag"
	"os"
	"time"
)

type Config struct {
	NetAddress                string
	HTTPServerShutdownTimeout time.Duration
}

func BuildConfig() (Config, error) {
	cfg := Config{
		HTTPServerShutdownTimeout: time.Second * 2,
	}
	flag.StringVar(&cfg.NetAddress, "a", ":8000", "Net address host:port")
	flag.Parse()

	if runAddress, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.NetAddress = runAddress
	}

	return cfg, nil
}
