package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/abrezinsky/totebet/internal/app"
	"github.com/abrezinsky/totebet/internal/auth"
	"github.com/abrezinsky/totebet/internal/config"
	"github.com/abrezinsky/totebet/internal/logger"
)

var (
	version = "dev"
)

// options are the command-line flags. Flags the user sets override the
// config file.
type options struct {
	configPath  string
	serve       bool
	port        int
	dbPath      string
	adminPw     string
	logLevel    string
	noAnimate   bool
	noKeyboard  bool
	showVersion bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, map[string]bool, error) {
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.BoolVar(&o.serve, "serve", false, "Serve the HTTP API instead of the interactive session")
	fs.IntVar(&o.port, "port", config.DefaultPort, "HTTP server port")
	fs.StringVar(&o.dbPath, "db", config.DefaultDatabasePath, "SQLite journal path")
	fs.StringVar(&o.adminPw, "adminpw", "", "Steward password (auto-generated if not set)")
	fs.StringVar(&o.logLevel, "loglevel", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&o.noAnimate, "noanimate", false, "Show logo only, skip race animation")
	fs.BoolVar(&o.noKeyboard, "nokeyboard", false, "Disable keyboard shortcuts")
	fs.BoolVar(&o.showVersion, "version", false, "Show version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `totebet - pari-mutuel tote for a single race

Usage:
  totebet [options]

Options:
  -config str    YAML config file (race, server, database, log sections)
  -serve         Serve the HTTP API instead of the interactive session
  -port int      HTTP server port (default %d)
  -db string     SQLite journal path (default %q)
  -adminpw str   Steward password (auto-generated if not set)
  -loglevel str  Log level: debug, info, warn, error (default %q)
  -noanimate     Show logo only, skip race animation
  -nokeyboard    Disable keyboard shortcuts
  -version       Show version and exit
  -help          Show this help message

Examples:
  totebet                                # Interactive session on stdin
  totebet < bets.txt                     # Replay a session from a file
  totebet -serve -port 9000              # Serve the API on port 9000
  totebet -serve -config race.yaml       # Race settings from a file
  totebet -serve -db /data/tote.db       # Keep the journal on disk
`, config.DefaultPort, config.DefaultDatabasePath, config.DefaultLogLevel)
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return o, set, nil
}

// loadConfig reads the config file when one is given and applies the flags
// the user set on top of it
func loadConfig(o *options, set map[string]bool) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadWithDefaults(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if set["port"] {
		cfg.Server.Port = o.port
	}
	if set["db"] {
		cfg.Database.Path = o.dbPath
	}
	if set["adminpw"] {
		cfg.Server.AdminPassword = o.adminPw
	}
	if set["loglevel"] {
		cfg.Log.Level = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func main() {
	o, set, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if o.showVersion {
		fmt.Printf("totebet %s\n", version)
		os.Exit(0)
	}

	cfg, err := loadConfig(o, set)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.serve {
		err = serve(ctx, stop, o, cfg)
	} else {
		err = interactive(ctx, cfg)
	}
	if err != nil {
		stop()
		log.Fatal(err)
	}
}

// interactive runs a betting session on stdin. Logs go to stderr so stdout
// carries only the session.
func interactive(ctx context.Context, cfg *config.Config) error {
	appLog := logger.NewWithWriter(os.Stderr, logger.ParseLevel(cfg.Log.Level))

	a, err := app.New(appLog, cfg, auth.New(cfg.Server.AdminPassword))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close()

	return a.RunCLI(ctx, os.Stdin, os.Stdout)
}

// serve runs the HTTP API until interrupted or quit from the keyboard
func serve(ctx context.Context, quit func(), o *options, cfg *config.Config) error {
	showStartupAnimation(o.noAnimate)

	password := cfg.Server.AdminPassword
	if password == "" {
		password = auth.GeneratePassword()
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.Log.Level))
	if cfg.Server.HTTPLogging {
		appLog.EnableHTTPLogging()
	}

	a, err := app.New(appLog, cfg, auth.New(password))
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer a.Close()

	appLog.Info("Steward password", "password", password)

	if !o.noKeyboard {
		baseURL := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
		printKeyboardHelp()
		go listenForKeyboard(newShortcuts(baseURL, appLog, quit))
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	return a.Run(ctx, fmt.Sprintf(":%d", cfg.Server.Port))
}
