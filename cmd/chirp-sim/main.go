// Command chirp-sim is an interactive shell around a simulated chirp
// connection.
//
// The simulator runs entirely in-process: nothing touches the network.
// Sent stanzas land in a capture queue for inspection, and incoming
// traffic is injected by hand or from a YAML scenario script.
//
// Usage:
//
//	chirp-sim [flags]
//
// Flags:
//
//	-domain string      Service domain (default "example.org")
//	-username string    Account local part (default "sim")
//	-resource string    Default bound resource
//	-transcript string  Write a CBOR session transcript to this file
//	-script string      Run a scenario file and exit instead of the shell
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Interactive session
//	chirp-sim -username alice
//
//	# Record a transcript for chirp-log
//	chirp-sim -transcript session.clog
//
//	# Run a scripted scenario
//	chirp-sim -script scenarios/basic_session.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chirp-protocol/chirp-go/cmd/chirp-sim/interactive"
	"github.com/chirp-protocol/chirp-go/pkg/connection"
	"github.com/chirp-protocol/chirp-go/pkg/conntest"
	"github.com/chirp-protocol/chirp-go/pkg/log"
	"github.com/chirp-protocol/chirp-go/pkg/scenario"
)

func main() {
	domain := flag.String("domain", "example.org", "Service domain")
	username := flag.String("username", "sim", "Account local part")
	resource := flag.String("resource", "", "Default bound resource")
	transcript := flag.String("transcript", "", "Write a CBOR session transcript to this file")
	script := flag.String("script", "", "Run a scenario file and exit instead of the shell")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
		os.Exit(1)
	}
	logrus.SetLevel(level)

	cfg := connection.Config{
		Domain:   *domain,
		Username: *username,
		Password: "simpass",
		Resource: *resource,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	conn := conntest.New(cfg)

	var fl *log.FileLogger
	if *transcript != "" {
		fl, err = log.NewFileLogger(*transcript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open transcript: %v\n", err)
			os.Exit(1)
		}
		defer fl.Close()
		conn.SetEventLogger(fl)
	}

	if *script != "" {
		code := runScript(conn, *script)
		if fl != nil {
			fl.Close()
		}
		os.Exit(code)
	}

	shell, err := interactive.New(conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start shell: %v\n", err)
		os.Exit(1)
	}

	// Keep diagnostics off the prompt line.
	logrus.SetOutput(shell.Stdout())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl-C at the prompt is handled by readline; signals end the
	// session when the shell is blocked elsewhere.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	shell.Run(ctx, cancel)
}

// runScript executes a scenario file non-interactively and returns the
// process exit code.
func runScript(conn *conntest.Conn, path string) int {
	sc, err := scenario.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scenario: %v\n", err)
		return 1
	}

	runner := scenario.NewRunner(conn)
	result := runner.Run(context.Background(), sc)

	for _, sr := range result.Steps {
		status := "ok"
		if !sr.Passed {
			status = fmt.Sprintf("FAILED: %v", sr.Err)
		}
		fmt.Printf("step %d %-16s %s\n", sr.Index, sr.Action, status)
	}

	if !result.Passed {
		fmt.Printf("Scenario %s FAILED\n", sc.ID)
		return 1
	}

	fmt.Printf("Scenario %s passed in %s\n", sc.ID, result.Duration.Round(time.Millisecond))
	return 0
}
