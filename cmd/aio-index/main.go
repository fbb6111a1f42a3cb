package main

import (
	"os"

	"github.com/eflav/aio-index/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
