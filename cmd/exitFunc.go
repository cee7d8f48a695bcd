package cmd

import "os"

// exitFunc terminates the process; tests swap it to observe exit codes.
var exitFunc = os.Exit
