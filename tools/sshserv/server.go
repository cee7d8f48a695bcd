// Package sshserv is a minimal SSH server for tests and local development.
// It answers "exec" requests through a Handler and reports the handler's exit
// status back to the client, which is all the connectivity probe needs.
package sshserv

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/binary"
	"errors"
	"net"
	"sync"

	"golang.org/x/crypto/ssh"
)

// Handler runs cmd and returns its output and exit status.
type Handler func(cmd string) (output string, status uint32)

// Options configures a Server.
type Options struct {
	// AuthorizedKey, when set, is the only public key accepted. When nil any
	// public key is accepted.
	AuthorizedKey ssh.PublicKey
	// Handler answers exec requests; the default prints "ok" and exits 0.
	Handler Handler
}

// Server is a running test SSH server.
type Server struct {
	ln      net.Listener
	wg      sync.WaitGroup
	hostKey ssh.Signer
	cfg     *ssh.ServerConfig
	handler Handler
}

// Start listens on listenAddr (e.g. 127.0.0.1:0) and serves until Close.
func Start(listenAddr string, opts Options) (*Server, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		return nil, err
	}
	cfg := &ssh.ServerConfig{
		PublicKeyCallback: func(_ ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if opts.AuthorizedKey == nil || bytes.Equal(key.Marshal(), opts.AuthorizedKey.Marshal()) {
				return &ssh.Permissions{}, nil
			}
			return nil, errors.New("unauthorized key")
		},
	}
	cfg.AddHostKey(signer)

	h := opts.Handler
	if h == nil {
		h = func(string) (string, uint32) { return "ok\n", 0 }
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, err
	}
	s := &Server{ln: ln, hostKey: signer, cfg: cfg, handler: h}
	s.wg.Add(1)
	go s.serve()
	return s, nil
}

// Addr returns the listening address.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// HostKey returns the server's public host key.
func (s *Server) HostKey() ssh.PublicKey { return s.hostKey.PublicKey() }

// Close stops accepting connections and waits for the accept loop to exit.
func (s *Server) Close() error {
	err := s.ln.Close()
	s.wg.Wait()
	return err
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(raw net.Conn) {
	_, chans, reqs, err := ssh.NewServerConn(raw, s.cfg)
	if err != nil {
		_ = raw.Close()
		return
	}
	go ssh.DiscardRequests(reqs)
	for ch := range chans {
		if ch.ChannelType() != "session" {
			_ = ch.Reject(ssh.UnknownChannelType, "")
			continue
		}
		c, reqs, err := ch.Accept()
		if err != nil {
			continue
		}
		go s.handleSession(c, reqs)
	}
}

func (s *Server) handleSession(ch ssh.Channel, in <-chan *ssh.Request) {
	defer ch.Close()
	for req := range in {
		if req.Type != "exec" {
			_ = req.Reply(false, nil)
			continue
		}
		cmd, ok := parseString(req.Payload)
		if !ok {
			_ = req.Reply(false, nil)
			return
		}
		_ = req.Reply(true, nil)
		out, status := s.handler(cmd)
		_, _ = ch.Write([]byte(out))
		payload := make([]byte, 4)
		binary.BigEndian.PutUint32(payload, status)
		_, _ = ch.SendRequest("exit-status", false, payload)
		return
	}
}

// parseString decodes an SSH wire string (uint32 length + bytes).
func parseString(b []byte) (string, bool) {
	if len(b) < 4 {
		return "", false
	}
	n := binary.BigEndian.Uint32(b)
	if uint32(len(b)-4) < n {
		return "", false
	}
	return string(b[4 : 4+n]), true
}
