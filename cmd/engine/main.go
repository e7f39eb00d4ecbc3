package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"internhunt-engine/internal/config"
	"internhunt-engine/internal/events"
	"internhunt-engine/internal/httpapi"
	"internhunt-engine/internal/poll"
	"internhunt-engine/internal/registry"
	"internhunt-engine/internal/store"
)

func main() {
	var (
		cfgFlag   = flag.String("config", "", "path to config.yml (default: <data dir>/config.yml)")
		dataFlag  = flag.String("data", "", "data directory; beats $INTERNHUNT_DATA_DIR and app.data_dir (default .)")
		readmeOff = flag.Bool("no-readme", false, "skip README rendering for this run")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [run|serve]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	mode := "run"
	if flag.NArg() > 0 {
		mode = flag.Arg(0)
	}

	env := config.LoadEnv()
	if *dataFlag != "" {
		env.DataDir = *dataFlag
	}
	if *cfgFlag != "" {
		env.ConfigPath = *cfgFlag
	}
	if err := os.MkdirAll(env.Dir(), 0o755); err != nil {
		log.Fatal(err)
	}

	userCfgPath := env.ConfigPath
	if userCfgPath == "" {
		p, err := config.EnsureUserConfig(env.Dir(), filepath.Join("config", "config.yml"))
		if err != nil {
			log.Fatalf("config bootstrap failed: %v", err)
		}
		userCfgPath = p
	}

	cfg, err := config.LoadWithCompanies(userCfgPath, filepath.Join(filepath.Dir(userCfgPath), "companies.yml"))
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	env.Apply(&cfg)
	if *readmeOff {
		cfg.Output.README = ""
	}
	dataDir := cfg.App.DataDir
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	st, err := openStore(cfg, dataDir)
	if err != nil {
		log.Fatalf("open registry: %v", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case "run":
		sum, err := poll.RunOnce(ctx, poll.Deps{Config: cfg, Store: st, DataDir: dataDir})
		if err != nil {
			log.Printf("run failed: %v", err)
			st.Close()
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(sum)
	case "serve":
		if err := serve(ctx, cfg, st, dataDir, userCfgPath); err != nil {
			log.Printf("serve: %v", err)
			st.Close()
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func openStore(cfg config.Config, dataDir string) (registry.Store, error) {
	p := cfg.Registry.Path
	if !filepath.IsAbs(p) {
		p = filepath.Join(dataDir, p)
	}
	if cfg.Registry.Driver == "sqlite" {
		return store.OpenSQLite(p)
	}
	return registry.NewJSONStore(p), nil
}

func serve(ctx context.Context, cfg config.Config, st registry.Store, dataDir, userCfgPath string) error {
	var cfgVal atomic.Value // config.Config
	cfgVal.Store(cfg)
	var status atomic.Value // types.ScrapeStatus

	hub := events.NewHub()
	runner := poll.NewRunner(&cfgVal, &status, st, dataDir).WithEvents(hub)
	poll.StartPoller(ctx, runner)

	ln, err := net.Listen("tcp", cfg.App.Listen)
	if err != nil {
		return err
	}
	log.Printf("engine listening on http://%s (registry=%s:%s)", cfg.App.Listen, cfg.Registry.Driver, cfg.Registry.Path)

	srv := &http.Server{
		Handler: httpapi.Handler(httpapi.Deps{
			Store:       st,
			CfgVal:      &cfgVal,
			UserCfgPath: userCfgPath,
			Runner:      runner,
			Hub:         hub,
			BaseCtx:     ctx,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
