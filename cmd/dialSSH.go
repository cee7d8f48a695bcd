package cmd

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// dialSSH opens an SSH connection to target authenticating with the private
// key at keyPath only. Host keys are not verified unless strictHost is set, in
// which case knownHostsPath must exist.
func dialSSH(target, user, keyPath, knownHostsPath string, strictHost bool, dialTimeout time.Duration) (*ssh.Client, error) {
	signer, err := loadSigner(keyPath)
	if err != nil {
		return nil, fmt.Errorf("load key: %w", err)
	}

	var hostKeyCB ssh.HostKeyCallback
	if strictHost {
		if _, err := os.Stat(knownHostsPath); err != nil {
			return nil, fmt.Errorf("known_hosts file not found at %s and strict-host-key is enabled", knownHostsPath)
		}
		cb, err := knownhosts.New(knownHostsPath)
		if err != nil {
			return nil, fmt.Errorf("known_hosts: %w", err)
		}
		hostKeyCB = cb
	} else {
		hostKeyCB = ssh.InsecureIgnoreHostKey()
	}

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCB,
		Timeout:         dialTimeout,
	}

	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.Dial("tcp", target)
	if err != nil {
		return nil, err
	}
	if dialTimeout > 0 {
		// bound the handshake as well as the TCP connect
		_ = conn.SetDeadline(time.Now().Add(dialTimeout))
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, target, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})
	return ssh.NewClient(c, chans, reqs), nil
}

// sshTarget joins the backup host with the SSH port; a zero port means 22.
func sshTarget(host string, port int) string {
	if port == 0 {
		port = defaultSSHPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
