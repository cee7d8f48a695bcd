package cmd

import (
	"errors"

	"golang.org/x/crypto/ssh"
)

// sessionClient hands out command sessions; *ssh.Client satisfies it through
// sshClientWrapper, tests through fakes.
type sessionClient interface {
	NewSession() (session, error)
}

// session runs a single remote command.
type session interface {
	CombinedOutput(cmd string) ([]byte, error)
	Close() error
}

type sshClientWrapper struct {
	c *ssh.Client
}

func (w sshClientWrapper) NewSession() (session, error) {
	if w.c == nil {
		return nil, errors.New("nil ssh client")
	}
	s, err := w.c.NewSession()
	if err != nil {
		return nil, err
	}
	return sshSessionWrapper{s}, nil
}

type sshSessionWrapper struct {
	s *ssh.Session
}

func (w sshSessionWrapper) CombinedOutput(cmd string) ([]byte, error) { return w.s.CombinedOutput(cmd) }

func (w sshSessionWrapper) Close() error { return w.s.Close() }
