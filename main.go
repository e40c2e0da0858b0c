// Package main runs one library branch of the federation. Which branch is
// decided by APP_BRANCH (CON, MCG or MON); three processes, one per branch,
// reach each other over the peer table in BRANCH_PEERS.
package main

import (
	"log/slog"
	"os"
	"strings"

	"libranet/app/echoServer"
	catalogctrl "libranet/app/echoServer/controller/catalog"
	fedctrl "libranet/app/echoServer/controller/federation"
	patronctrl "libranet/app/echoServer/controller/patron"
	"libranet/app/echoServer/validation"
	"libranet/config"
	catalogrepo "libranet/repository/catalog"
	"libranet/repository/directory"
	peerrepo "libranet/repository/peer"
	branchsvc "libranet/service/branch"
	identitysvc "libranet/service/identity"
	"libranet/util/httpx"

	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.Load()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// branch state
	store := catalogrepo.New()
	if err := catalogrepo.Seed(store, cfg.BranchPrefix); err != nil {
		log.Error("seed failed", "branch", cfg.BranchPrefix, "err", err)
		os.Exit(1)
	}

	// peers
	httpc := httpx.New(cfg.PeerTimeout)
	clients := map[string]peerrepo.Client{}
	for prefix, baseURL := range cfg.Peers {
		clients[strings.ToUpper(prefix)] = peerrepo.NewHTTP(baseURL, httpc)
	}
	dir := directory.NewStatic(clients)

	// services
	bs := branchsvc.New(cfg.BranchPrefix, store, dir)
	ids := identitysvc.New(cfg.BranchPrefix)

	// controllers
	val := validation.New()
	v := val.Rules()
	catalogC := &catalogctrl.Controller{Svc: bs, V: v, Log: log}
	patronC := &patronctrl.Controller{Svc: bs, Ids: ids, V: v, Log: log}
	fedC := &fedctrl.Controller{Svc: bs, Catalog: store, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, cfg.BranchPrefix)
	e.Validator = val

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status": "ok",
			"branch": cfg.BranchPrefix,
		})
	})

	echoServer.Register(e, echoServer.C{
		Catalog:    catalogC,
		Patron:     patronC,
		Federation: fedC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting branch", "branch", cfg.BranchPrefix, "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
