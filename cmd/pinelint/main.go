// Package main provides the pinelint command.
package main

import (
	"os"

	"github.com/leapstack-labs/pinelint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
