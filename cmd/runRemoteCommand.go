package cmd

import (
	"context"
	"errors"

	"golang.org/x/crypto/ssh"
)

// runRemoteCommand executes cmd in a fresh session and returns its combined
// output and exit status. The exit status is -1 when the command never
// reported one (session failure, dropped connection, cancelled ctx).
func runRemoteCommand(ctx context.Context, client sessionClient, cmd string) ([]byte, int, error) {
	type result struct {
		out      []byte
		exitCode int
		err      error
	}

	run := func() result {
		sess, err := client.NewSession()
		if err != nil {
			return result{nil, -1, err}
		}
		defer func() { _ = sess.Close() }()
		b, err := sess.CombinedOutput(cmd)
		if err == nil {
			return result{b, 0, nil}
		}
		exit := -1
		var ee *ssh.ExitError
		if errors.As(err, &ee) {
			exit = ee.ExitStatus()
		}
		return result{b, exit, err}
	}

	ch := make(chan result, 1)
	go func() { ch <- run() }()

	select {
	case r := <-ch:
		return r.out, r.exitCode, r.err
	case <-ctx.Done():
		return nil, -1, ctx.Err()
	}
}
