// Command kioskctl inspects and edits the kiosk ledger from a terminal,
// against the same document backend the server uses.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&reportCmd{}, "reports")
	commander.Register(&purchaseCmd{}, "transactions")
	commander.Register(&saleCmd{}, "transactions")
	commander.Register(&migrateCmd{}, "maintenance")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
