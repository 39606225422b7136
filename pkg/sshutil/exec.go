package sshutil

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/rileyhilliard/fleettop/internal/errors"
	"golang.org/x/crypto/ssh"
)

// ConnectionLostError reports that the transport under a session is gone.
// The session must be discarded and a new one dialed.
type ConnectionLostError struct {
	Host string
	Err  error
}

func (e *ConnectionLostError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("connection to %s lost", e.Host)
	}
	return fmt.Sprintf("connection to %s lost: %v", e.Host, e.Err)
}

func (e *ConnectionLostError) Unwrap() error {
	return e.Err
}

// IsConnectionError reports whether err means the connection itself failed,
// as opposed to a single command or channel failing.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var lost *ConnectionLostError
	if stderrors.As(err, &lost) {
		return true
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if isClosedConnError(err) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr)
}

func isClosedConnError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, net.ErrClosed) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") ||
		strings.Contains(msg, "connection reset by peer") ||
		strings.Contains(msg, "broken pipe")
}

// OpenChannel opens a new session channel for running one command.
// If the transport is gone the error is a *ConnectionLostError; a refusal
// from the server for this channel only is returned as a structured error.
func (c *Client) OpenChannel() (Channel, error) {
	if c.Lost() {
		return nil, &ConnectionLostError{Host: c.Host, Err: io.EOF}
	}

	session, err := c.Client.NewSession()
	if err != nil {
		var refused *ssh.OpenChannelError
		if stderrors.As(err, &refused) {
			return nil, errors.WrapWithCode(err, errors.ErrSSH,
				"Host refused to open a channel",
				"The server may limit sessions per connection (MaxSessions).")
		}
		return nil, &ConnectionLostError{Host: c.Host, Err: err}
	}

	return &clientChannel{client: c, session: session}, nil
}

// clientChannel is one *ssh.Session used for a single command.
type clientChannel struct {
	client  *Client
	session *ssh.Session
}

// Run executes cmd and returns its exit code and captured output.
// Exit code is -1 when err is non-nil.
func (ch *clientChannel) Run(cmd string) (exitCode int, stdout, stderr []byte, err error) {
	var stdoutBuf, stderrBuf bytes.Buffer
	ch.session.Stdout = &stdoutBuf
	ch.session.Stderr = &stderrBuf

	err = ch.session.Run(cmd)
	if err == nil {
		return 0, stdoutBuf.Bytes(), stderrBuf.Bytes(), nil
	}

	var exitErr *ssh.ExitError
	if stderrors.As(err, &exitErr) {
		// Command ran, just had non-zero exit
		return exitErr.ExitStatus(), stdoutBuf.Bytes(), stderrBuf.Bytes(), nil
	}

	// A channel closed without an exit status is how a dying transport
	// usually shows up here.
	var missing *ssh.ExitMissingError
	if stderrors.As(err, &missing) {
		if ch.client.Lost() {
			return -1, nil, nil, &ConnectionLostError{Host: ch.client.Host, Err: err}
		}
		return -1, nil, nil, errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("'%s' did not report an exit status", cmd),
			"The command may have been killed by a signal on the remote host.")
	}

	if IsConnectionError(err) || ch.client.Lost() {
		return -1, nil, nil, &ConnectionLostError{Host: ch.client.Host, Err: err}
	}

	return -1, nil, nil, errors.WrapWithCode(err, errors.ErrExec,
		fmt.Sprintf("Failed to run '%s'", cmd),
		"Check if the command exists on the remote host.")
}

// Close releases the channel.
func (ch *clientChannel) Close() error {
	err := ch.session.Close()
	if err == nil || stderrors.Is(err, io.EOF) {
		return nil
	}
	return err
}
