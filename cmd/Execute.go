package cmd

import (
	"fmt"
	"os"
)

// Execute runs the root command. Any error ends the process with status 1;
// the run has already logged the cause, the line printed here is the summary.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
		return
	}
}
