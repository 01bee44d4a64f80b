package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agilira/go-errors"
	"github.com/google/shlex"
)

// Git server-side subcommands a client may legitimately request.
var gitSubcommands = map[string]bool{
	"git-upload-pack":    true,
	"git-upload-archive": true,
	"git-receive-pack":   true,
}

// rxRemote is the full shape of a requested remote: user@host:path,
// with no whitespace anywhere, no colon or @ inside the host half and
// no single quote in the path.
var rxRemote = regexp.MustCompile(`^([^\s@:]+@[^\s@:]+):([^'\s]+)$`)

// RequestedRemote is the user@host:path target extracted from the
// client's original command, split at the remote's first colon.
type RequestedRemote struct {
	Host string // user@host
	Path string
}

func (r RequestedRemote) String() string {
	return r.Host + ":" + r.Path
}

// ExtractCommand parses the client's original command into a
// recognized Git subcommand and the remote it targets. The accepted
// grammar is exactly "<git-subcommand> '<user@host:path>'"; anything
// else is rejected outright. There is no partial recovery: ambiguous
// input must never reach the transport exec.
func ExtractCommand(raw string) (string, RequestedRemote, error) {
	var none RequestedRemote

	if raw == "" {
		return "", none, errors.New(ErrCodeCommand, "empty command")
	}
	for _, r := range raw {
		if r < 0x20 || r == 0x7f {
			return "", none, errors.New(ErrCodeCommand, "control character in command")
		}
	}

	tokens, err := shlex.Split(raw)
	if err != nil {
		return "", none, errors.Wrap(err, ErrCodeCommand, "cannot tokenize command")
	}
	if len(tokens) == 0 {
		return "", none, errors.New(ErrCodeCommand, "empty command")
	}
	sub := tokens[0]
	if !gitSubcommands[sub] {
		return "", none, errors.New(ErrCodeCommand,
			fmt.Sprintf("not a git transport subcommand: %s", sub))
	}
	if len(tokens) != 2 {
		return "", none, errors.New(ErrCodeCommand,
			fmt.Sprintf("expected exactly one argument, got %d", len(tokens)-1))
	}

	m := rxRemote.FindStringSubmatch(tokens[1])
	if m == nil {
		return "", none, errors.New(ErrCodeCommand,
			fmt.Sprintf("argument is not a user@host:path remote: %q", tokens[1]))
	}
	host, path := m[1], m[2]

	// Common path traversal vectors have no legitimate use here.
	// Pattern matching is the real control; this just cuts the noise.
	if strings.Contains(path, "..") || strings.HasPrefix(path, "/") {
		return "", none, errors.New(ErrCodeCommand,
			fmt.Sprintf("path traversal in remote path: %q", path))
	}

	return sub, RequestedRemote{Host: host, Path: path}, nil
}
