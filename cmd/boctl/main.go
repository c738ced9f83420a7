package main

import (
	"os"

	"github.com/tradedesk/backoffice/pkg/cli"
	"github.com/tradedesk/backoffice/pkg/cli/config"
)

func main() {
	// Interactive use asks before deleting records
	config.SetConfirmDeletes(true)

	if err := cli.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
