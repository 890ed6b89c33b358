// Copyright (C) 2019-2026, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "unicorn",
	Short: "UNICORN distributed randomness beacon tools",
	Long: `unicorn runs the UNICORN commit-then-VDF randomness beacon protocol:
a round of peers commit to random seed contributions, combine them into a
canonical seed, each independently evaluates a verifiable delay function
over that seed, and the round's randomness is the value at least two
thirds of peers agree on.

Key Features:
- In-process multi-peer demo round over an in-memory transport
- A single-peer process joining a real round over ZeroMQ PUB/SUB
- Wesolowski verifiable delay function evaluation and verification`,
}

func main() {
	rootCmd.AddCommand(
		runCmd(),
		serveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
