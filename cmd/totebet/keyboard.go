package main

import (
	"fmt"
	"strings"

	"github.com/abrezinsky/totebet/internal/browser"
	"github.com/abrezinsky/totebet/internal/logger"
)

// shortcuts carries what the keyboard listener acts on
type shortcuts struct {
	baseURL string
	log     *logger.SlogLogger
	quit    func()
	open    func(url string) error
}

func newShortcuts(baseURL string, log *logger.SlogLogger, quit func()) *shortcuts {
	return &shortcuts{baseURL: baseURL, log: log, quit: quit, open: browser.Open}
}

// handleKey performs the action bound to key and reports whether the
// listener should stop
func (s *shortcuts) handleKey(key byte) bool {
	switch strings.ToLower(string(key)) {
	case "r":
		s.openPage("race", "/api/race")
	case "d":
		s.openPage("dividends", "/api/dividends")
	case "h":
		if s.log.IsHTTPLoggingEnabled() {
			s.log.DisableHTTPLogging()
			fmt.Printf("%sHTTP logging disabled%s\n", yellow, reset)
		} else {
			s.log.EnableHTTPLogging()
			fmt.Printf("%sHTTP logging enabled%s\n", green, reset)
		}
	case "l":
		cycleLogLevel(s.log)
	case "q", "\x03": // Ctrl+C arrives as a byte in non-canonical mode
		fmt.Printf("%sShutting down server...%s\n", yellow, reset)
		s.quit()
		return true
	case "?":
		printKeyboardHelp()
	}
	return false
}

func (s *shortcuts) openPage(name, path string) {
	fmt.Printf("%sOpening %s in browser...%s\n", cyan, name, reset)
	if err := s.open(s.baseURL + path); err != nil {
		fmt.Printf("%sError opening browser: %v%s\n", red, err, reset)
	}
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) {
	next := map[string]string{
		"DEBUG": "info",
		"INFO":  "warn",
		"WARN":  "error",
		"ERROR": "debug",
	}[appLog.GetLevel().String()]
	if next == "" {
		next = "info"
	}
	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Printf("%sLog level: %s%s%s\n", green, yellow, next, reset)
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %sr%s      - Open race details in browser\n", cyan, reset)
	fmt.Printf("    %sd%s      - Open dividends in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}
