// Les Petits Plats: search a recipe catalog by text and by ingredient,
// appliance and utensil filters.
//
// Usage:
//
//	petitsplats [-config file] [-verbose] [-quiet] [-plain] [-log-file path]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hammamikhairi/petitsplats/internal/config"
	"github.com/hammamikhairi/petitsplats/internal/conversation"
	"github.com/hammamikhairi/petitsplats/internal/display"
	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/engine"
	"github.com/hammamikhairi/petitsplats/internal/logger"
	"github.com/hammamikhairi/petitsplats/internal/recipe"
	"github.com/hammamikhairi/petitsplats/internal/search"
	"github.com/hammamikhairi/petitsplats/internal/session"
	"github.com/hammamikhairi/petitsplats/internal/timer"
)

// defaultTUILogFile keeps logs out of the full-screen UI.
const defaultTUILogFile = ".petitsplats-logs/petitsplats.log"

func main() {
	configPath := flag.String("config", "", "YAML config file (default: $PETITSPLATS_CONFIG or ./petitsplats.yaml)")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	plain := flag.Bool("plain", false, "line-oriented output instead of the full-screen UI")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the loaded configuration.
	if *verbose {
		cfg.Log.Level = "verbose"
	}
	if *quiet {
		cfg.Log.Level = "off"
	}
	if *plain {
		cfg.UI.Mode = "plain"
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if cfg.Log.File == "" && cfg.UI.Mode == "tui" {
		cfg.Log.File = defaultTUILogFile
	}

	logOut, closeLog := openLog(cfg.Log.File)
	log := logger.New(cfg.LogLevel(), logOut, logger.WithFormat(cfg.LogFormat()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Error("%v", err)
		closeLog()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	closeLog()
}

// openLog returns the log destination. Failures fall back to stderr.
func openLog(path string) (io.Writer, func()) {
	if path == "" || path == "stderr" {
		return os.Stderr, func() {}
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", path, err)
		return os.Stderr, func() {}
	}
	return f, func() { f.Close() }
}

func loadCatalog(cfg *config.Config, log *logger.Logger) (*recipe.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return recipe.LoadFile(cfg.Catalog.Path, log)
	}
	return recipe.Embedded(log)
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	cat, err := loadCatalog(cfg, log)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	var source domain.CatalogSource = cat
	recipes, err := source.All(ctx)
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}

	searchOpts, err := cfg.SearchOptions()
	if err != nil {
		return err
	}
	eng := engine.New(recipes, log,
		engine.WithSearcher(search.NewSearcher(log, searchOpts...)),
		engine.WithMinQueryLength(cfg.Search.MinQueryLength),
	)

	total := cfg.Catalog.DisplayTotal
	if total == 0 {
		total = len(recipes)
	}

	sched := timer.New(log)
	defer sched.Stop()

	log.Info("catalog: %d recipes, match=%s, debounce=%s, ui=%s",
		len(recipes), cfg.Search.MatchMode, cfg.Search.Debounce, cfg.UI.Mode)

	if cfg.UI.Mode == "plain" {
		return runPlain(ctx, cfg, eng, sched, total, log)
	}
	return runTUI(ctx, cfg, eng, sched, total, log)
}

func runPlain(ctx context.Context, cfg *config.Config, eng *engine.Engine, sched *timer.Scheduler, total int, log *logger.Logger) error {
	printFn := func(format string, a ...interface{}) {
		fmt.Printf(format+"\n", a...)
	}
	rend := conversation.NewTextRenderer(log, printFn, total, cfg.UI.MaxCards)
	ctrl := session.New(eng, rend, log,
		session.WithDebounce(cfg.Search.Debounce),
		session.WithScheduler(sched),
	)
	defer ctrl.Close()

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Tapez une recherche, ou :help pour les commandes."))
	fmt.Println()

	if err := ctrl.Refresh(); err != nil {
		return err
	}
	conversation.NewShell(ctrl, printFn, log).Run(ctx, conversation.ScanLines(os.Stdin))
	return nil
}

func runTUI(ctx context.Context, cfg *config.Config, eng *engine.Engine, sched *timer.Scheduler, total int, log *logger.Logger) error {
	var ctrl *session.Controller
	ui := display.NewUI(func(q string) {
		if err := ctrl.Input(q); err != nil {
			log.Warn("input: %v", err)
		}
	},
		display.WithMaxCards(cfg.UI.MaxCards),
		display.WithTotal(total),
	)
	ctrl = session.New(eng, ui, log,
		session.WithDebounce(cfg.Search.Debounce),
		session.WithScheduler(sched),
	)
	defer ctrl.Close()

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Tapez pour rechercher; :help pour les commandes, :quit pour sortir."))
	fmt.Println()

	shell := conversation.NewShell(ctrl, ui.Printf, log)

	// App logic runs beside the event loop; renders only start once the
	// loop reads messages.
	go func() {
		ui.WaitReady()
		if err := ctrl.Refresh(); err != nil {
			log.Error("first render: %v", err)
		}
		shell.Run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
