package config

import "time"

type App struct {
	BranchPrefix string            `env:"APP_BRANCH,required"`
	Port         string            `env:"APP_PORT" default:"8080"`
	Peers        map[string]string `env:"BRANCH_PEERS"`
	PeerTimeout  time.Duration     `env:"PEER_TIMEOUT_MS" default:"5000"`
	Env          string            `env:"APP_ENV" default:"dev"`
}
