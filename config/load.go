package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default peer table for a three-branch federation on one host.
const defaultPeers = "CON=http://localhost:8081,MCG=http://localhost:8082,MON=http://localhost:8083"

func Load() App {
	_ = godotenv.Load()

	cfg := App{
		BranchPrefix: strings.ToUpper(must("APP_BRANCH")),
		Port:         getenv("APP_PORT", "8080"),
		Peers:        parsePeers(getenv("BRANCH_PEERS", defaultPeers)),
		PeerTimeout:  time.Duration(getint("PEER_TIMEOUT_MS", 5000)) * time.Millisecond,
		Env:          getenv("APP_ENV", "dev"),
	}
	if _, ok := cfg.Peers[cfg.BranchPrefix]; !ok {
		slog.Error("branch prefix missing from peer table", "prefix", cfg.BranchPrefix)
		panic("unknown branch " + cfg.BranchPrefix)
	}
	return cfg
}

// parsePeers reads "CON=http://host:port,MCG=..." into a prefix -> base URL map.
func parsePeers(s string) map[string]string {
	peers := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || k == "" || v == "" {
			continue
		}
		peers[strings.ToUpper(k)] = strings.TrimRight(v, "/")
	}
	return peers
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Error("invalid numeric env", "key", k, "value", v)
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
