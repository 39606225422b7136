package sshutil

import "context"

// Dialer opens authenticated sessions to remote hosts.
//
// The real implementation is returned by NewDialer; tests substitute the
// scripted fakes from pkg/sshutil/testing.
type Dialer interface {
	// Dial connects and authenticates to host. The host string may be an SSH
	// config alias, a hostname, user@hostname or hostname:port.
	Dial(ctx context.Context, host string) (Session, error)
}

// Session is one authenticated connection to a host. It can open any number
// of independent command channels until it is closed or the transport dies.
type Session interface {
	// OpenChannel opens a new command channel on the session.
	// A *ConnectionLostError means the session itself is unusable; any other
	// error means only this channel was refused.
	OpenChannel() (Channel, error)

	// Close disconnects from the host.
	Close() error
}

// Channel runs exactly one command to completion.
type Channel interface {
	// Run executes cmd and collects its exit status and output.
	// A non-zero exit code with nil error means the command ran but failed.
	// A non-nil error means no exit status was received.
	Run(cmd string) (exitCode int, stdout, stderr []byte, err error)

	// Close releases the channel. Safe to call after Run.
	Close() error
}

var (
	_ Session = (*Client)(nil)
	_ Channel = (*clientChannel)(nil)
)
