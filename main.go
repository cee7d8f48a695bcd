package main

import "github.com/fliphess/rsync-backup/cmd"

func main() {
	cmd.Execute()
}
