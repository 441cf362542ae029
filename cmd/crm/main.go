package main

import (
	"os"

	"github.com/nuvora-hq/crm-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
