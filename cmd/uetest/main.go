// Package main is the entry point for the uetest CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/uetest/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args))
}
