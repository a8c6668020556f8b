// ABOUTME: Entry point for the reads CLI
// ABOUTME: Terminal client for the $READS learn-to-earn platform

package main

import (
	"fmt"
	"os"

	"github.com/readsmvp/reads-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
