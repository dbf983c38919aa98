// Package main is the entry point for the treecmp CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/treecmp/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
