package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"kioskanalyzer/internal/domain"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "rewrite the stored document in the current schema" }
func (*migrateCmd) Usage() string {
	return `kioskctl migrate

  Loads the stored document, converts legacy fields and coerces malformed
  values, then writes the normalized document back.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	a.docs.Reload(ctx)
	doc, err := a.docs.Write(ctx, func(doc domain.Document) (domain.Document, error) {
		return doc, nil
	})
	if err != nil {
		fail("write document: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Document normalized: %d items, %d purchases, %d sales, %d expenses\n",
		len(doc.Inventory), len(doc.Purchases), len(doc.Sales), len(doc.OtherExpenses))
	return subcommands.ExitSuccess
}
