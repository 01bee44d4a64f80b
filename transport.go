package main

import (
	"os"

	"github.com/agilira/go-errors"
	"golang.org/x/sys/unix"
)

// sshPath is the upstream SSH client binary. Fixed at build time
// (-ldflags "-X main.sshPath=...") rather than read from the
// environment, so a misconfigured AcceptEnv cannot point the exec at
// an arbitrary executable.
var sshPath = "/usr/bin/ssh"

// execTransport replaces the current process image with the real SSH
// client for the approved subcommand and remote. On success it does
// not return; the kernel hands the session's stdio descriptors to the
// replacement unchanged, so no bytes are ever forwarded through this
// program. The only observable outcome is failure to exec.
func execTransport(subcommand string, remote RequestedRemote) error {
	// The extraction grammar guarantees the path holds no whitespace
	// or single quotes, so the remote-side string is unambiguous.
	argv := []string{sshPath, remote.Host, subcommand + " '" + remote.Path + "'"}
	if err := unix.Exec(sshPath, argv, os.Environ()); err != nil {
		return errors.Wrap(err, ErrCodeTransport, "cannot exec upstream ssh")
	}
	return nil
}
