// FreshFridge keeps a pantry and a grocery list, finds recipes for what
// is in the pantry and adds the missing ingredients to the grocery list.
//
// Usage:
//
//	freshfridge [-verbose] [-quiet] [-demo] [-export groceries.xlsx]
//	freshfridge -serve [-addr :8080]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexmuntean1/freshfridge/internal/display"
	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/edamam"
	"github.com/alexmuntean1/freshfridge/internal/engine"
	"github.com/alexmuntean1/freshfridge/internal/export"
	"github.com/alexmuntean1/freshfridge/internal/logger"
	"github.com/alexmuntean1/freshfridge/internal/recipe"
	"github.com/alexmuntean1/freshfridge/internal/report"
	"github.com/alexmuntean1/freshfridge/internal/storage"
	"github.com/alexmuntean1/freshfridge/internal/web"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".freshfridge/freshfridge.log", "file to write logs to (use \"stderr\" to log to console)")
	serve := flag.Bool("serve", false, "run the JSON HTTP API instead of the terminal UI")
	addr := flag.String("addr", "", "listen address for -serve (default :$PORT or :8080)")
	origins := flag.String("origins", "", "comma-separated origins allowed to call the API cross-origin (-serve)")
	timeout := flag.Duration("timeout", 15*time.Second, "timeout for each Edamam request")
	demo := flag.Bool("demo", false, "use the built-in recipe catalog instead of Edamam")
	exportPath := flag.String("export", "", "write the grocery list to this .xlsx or .csv file when the UI exits")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// The terminal UI owns the screen, so logs go to a file unless asked
	// otherwise. The server logs to stderr by default.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" && !*serve {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	searcher, analyzer, err := recipeBackend(*demo, *timeout, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, domain.ErrMissingKey) {
			fmt.Fprintf(os.Stderr, "set %s and %s (see .env), or run with -demo\n", edamam.EnvAppID, edamam.EnvAppKey)
		}
		os.Exit(1)
	}

	store := storage.NewMemoryStore(log.Named("storage"))
	reporter := report.NewLogReporter(log.Named("report"), 50)
	eng := engine.New(store, searcher, analyzer, reporter, log.Named("engine"))

	if *serve {
		listen := *addr
		if listen == "" {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			listen = ":" + port
		}
		srv := web.NewServer(eng, log,
			web.WithRequestTimeout(*timeout),
			web.WithAllowedOrigins(strings.Split(*origins, ",")...),
		)
		if err := srv.ListenAndServe(ctx, listen); err != nil {
			log.Error("server: %v", err)
			os.Exit(1)
		}
		return
	}

	session := eng.Open(engine.NewSessionID())
	ui := display.NewUI(session, log.Named("ui"), display.WithTimeout(*timeout), display.WithAltScreen())
	if err := ui.Run(ctx); err != nil {
		log.Error("display: %v", err)
	}

	if *exportPath != "" {
		if err := export.ToFile(*exportPath, session.Groceries.Items()); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("grocery list written to %s\n", *exportPath)
	}
	if n := reporter.Total(); n > 0 {
		fmt.Fprintf(os.Stderr, "%d request(s) failed during the session; see %s\n", n, *logFile)
	}
}

// recipeBackend picks the recipe search and nutrition source.
func recipeBackend(demo bool, timeout time.Duration, log *logger.Logger) (domain.RecipeSearcher, domain.NutritionAnalyzer, error) {
	if demo {
		c := recipe.NewCatalog(log.Named("catalog"))
		log.Info("using the built-in recipe catalog")
		return c, c, nil
	}
	c, err := edamam.FromEnv(log.Named("edamam"), edamam.WithHTTPTimeout(timeout))
	if err != nil {
		return nil, nil, err
	}
	return c, c, nil
}
