package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	srv "github.com/fliphess/rsync-backup/tools/sshserv"
)

// ssh_test_server is a local stand-in backup host on 127.0.0.1:20222. It
// accepts any public key and answers "uptime" like a healthy host. Point
// rsync-backup at it with backup_host 127.0.0.1 and --ssh-port 20222.
func main() {
	s, err := srv.Start("127.0.0.1:20222", srv.Options{
		Handler: func(cmd string) (string, uint32) {
			if cmd == "uptime" {
				return " 12:00:00 up 1 day,  1 user,  load average: 0.00, 0.00, 0.00\n", 0
			}
			return "sh: " + cmd + ": not found\n", 127
		},
	})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "failed to start test ssh server:", err)
		os.Exit(1)
	}
	_, _ = fmt.Fprintln(os.Stderr, "test ssh server listening on", s.Addr())
	defer func() { _ = s.Close() }()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
