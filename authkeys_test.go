package main

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

// Helper: generate an ed25519 public key file for a pretend client
func writePubKey(t *testing.T) string {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("ed25519 keygen: %v", err)
	}
	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("ssh public key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "id_ed25519.pub")
	if err := os.WriteFile(path, ssh.MarshalAuthorizedKey(sshPub), 0o644); err != nil {
		t.Fatalf("write pubkey: %v", err)
	}
	return path
}

// TestAuthKeysLine checks the emitted forced-command binding.
func TestAuthKeysLine(t *testing.T) {
	cfg := writeConfig(t, `{"dev-chess": ["git@github.com:myself/*"]}`)
	key := writePubKey(t)

	var buf bytes.Buffer
	if code := runAuthKeys([]string{cfg, "dev-chess", key}, &buf); code != 0 {
		t.Fatalf("runAuthKeys failed with code %d", code)
	}
	line := strings.TrimSpace(buf.String())
	for _, want := range []string{"command=", "dev-chess", "no-pty", "no-port-forwarding", "ssh-ed25519"} {
		if !strings.Contains(line, want) {
			t.Errorf("authorized_keys line missing %q: %s", want, line)
		}
	}
	if strings.Count(line, "\n") != 0 {
		t.Errorf("expected a single line, got %q", line)
	}
}

// TestAuthKeysUnknownClient refuses clients with no allow-list entry
// so typos do not become silent zero-privilege accounts.
func TestAuthKeysUnknownClient(t *testing.T) {
	cfg := writeConfig(t, `{"dev-chess": ["git@github.com:myself/*"]}`)
	key := writePubKey(t)

	var buf bytes.Buffer
	if code := runAuthKeys([]string{cfg, "dev-typo", key}, &buf); code != exitConfig {
		t.Errorf("unknown client: got code %d, want %d", code, exitConfig)
	}
	if buf.Len() != 0 {
		t.Errorf("no line should be emitted for an unknown client")
	}
}

// TestAuthKeysUsage rejects wrong argument counts.
func TestAuthKeysUsage(t *testing.T) {
	var buf bytes.Buffer
	if code := runAuthKeys([]string{"only-one"}, &buf); code != exitConfig {
		t.Errorf("short argv: got code %d, want %d", code, exitConfig)
	}
}
