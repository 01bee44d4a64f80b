// Gitgate — a restrictive Git-over-SSH proxy for compartmentalizing clients
package main

import (
	"fmt"
	"os"

	"github.com/agilira/go-errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
)

// Exit codes split operator mistakes from client misbehavior.
const (
	exitConfig    = 1
	exitClient    = 2
	exitTransport = 3
)

// auditLog is the operator-side audit sink. Fixed at build time
// (-ldflags "-X main.auditLog=/var/log/gitgate.log") rather than read
// from the environment, so a misconfigured AcceptEnv cannot redirect
// it. Empty disables auditing.
var auditLog = ""

func main() {
	setupLogging()

	if len(os.Args) >= 2 && os.Args[1] == "authkeys" {
		os.Exit(runAuthKeys(os.Args[2:], os.Stdout))
	}

	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: gitgate <config.json> <client-name>")
		os.Exit(exitConfig)
	}
	configPath, client := os.Args[1], os.Args[2]

	raw, ok := os.LookupEnv("SSH_ORIGINAL_COMMAND")
	if !ok {
		// Key auth worked but the client asked for a login shell.
		fmt.Fprintln(os.Stderr, "gitgate: this is not a shell; use a git client to connect")
		os.Exit(exitClient)
	}

	sub, remote, code := session(configPath, client, raw)
	if code != 0 {
		os.Exit(code)
	}

	// Never returns on success: the process image is replaced and the
	// session's stdio belongs to the real transport from here on.
	if err := execTransport(sub, remote); err != nil {
		logEvent("err", client, remote.String(), "exec failed", err)
		fmt.Fprintln(os.Stderr, "gitgate: transport failure")
		os.Exit(exitTransport)
	}
}

// session makes the one authorization decision of this invocation and
// returns the approved subcommand and remote, or a nonzero exit code.
// Client-visible diagnostics name the failure kind only; everything
// else goes to the audit log.
func session(configPath, client, raw string) (string, RequestedRemote, int) {
	var none RequestedRemote

	access, err := LoadAccess(configPath)
	if err != nil {
		logEvent("err", client, "", "config load failed", err)
		fmt.Fprintln(os.Stderr, "gitgate: configuration error")
		return "", none, exitConfig
	}

	sub, remote, err := ExtractCommand(raw)
	if err != nil {
		logEvent("warn", client, "", "malformed command", err)
		fmt.Fprintln(os.Stderr, "gitgate: malformed command")
		return "", none, exitClient
	}

	if !Allowed(remote, access.Lookup(client)) {
		logEvent("warn", client, remote.String(), "remote denied",
			errors.New(ErrCodeDenied, "no pattern matched"))
		fmt.Fprintln(os.Stderr, "gitgate: access denied")
		return "", none, exitClient
	}

	logEvent("info", client, remote.String(), "remote allowed", nil)
	return sub, remote, 0
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if auditLog == "" {
		log.Logger = zerolog.Nop()
		return
	}
	f, err := os.OpenFile(auditLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		// The session still runs, just unaudited.
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = zerolog.New(f).With().Timestamp().Str("v", Version).Logger()
}

func logEvent(lvl string, client, remote, msg string, err error) {
	lg := log.With()
	if client != "" {
		lg = lg.Str("c", client)
	}
	if remote != "" {
		lg = lg.Str("r", remote)
	}
	e := lg.Logger()
	switch lvl {
	case "debug":
		e.Debug().Err(err).Msg(msg)
	case "warn":
		e.Warn().Err(err).Msg(msg)
	case "err":
		e.Error().Err(err).Msg(msg)
	default:
		e.Info().Msg(msg)
	}
}
