package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// authKeyOptions lock the gateway account down to the forced command:
// no shell, no forwarding, nothing but the git transport.
var authKeyOptions = []string{
	"no-agent-forwarding",
	"no-port-forwarding",
	"no-pty",
	"no-X11-forwarding",
}

// runAuthKeys prints the authorized_keys line that binds a client's
// public key to this gatekeeper as a forced command. Clients absent
// from the allow-list file are refused so a typo surfaces at
// provisioning time instead of as a silent zero-privilege account.
func runAuthKeys(args []string, w io.Writer) int {
	if len(args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: gitgate authkeys <config.json> <client-name> <pubkey-file>")
		return exitConfig
	}
	configPath, client, keyPath := args[0], args[1], args[2]

	access, err := LoadAccess(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitgate: %v\n", err)
		return exitConfig
	}
	if len(access.Lookup(client)) == 0 {
		fmt.Fprintf(os.Stderr, "gitgate: client %q has no allow-list entry\n", client)
		return exitConfig
	}

	b, err := os.ReadFile(keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitgate: cannot read public key: %v\n", err)
		return exitConfig
	}
	pub, comment, _, _, err := ssh.ParseAuthorizedKey(b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitgate: cannot parse public key: %v\n", err)
		return exitConfig
	}

	self, err := os.Executable()
	if err != nil {
		self = "gitgate"
	}

	opts := append([]string{
		fmt.Sprintf("command=%q", fmt.Sprintf("%s %s %s", self, configPath, client)),
	}, authKeyOptions...)

	line := strings.Join(opts, ",") + " " + strings.TrimSpace(string(ssh.MarshalAuthorizedKey(pub)))
	if comment != "" {
		line += " " + comment
	}
	fmt.Fprintln(w, line)
	return 0
}
