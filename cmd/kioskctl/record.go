package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"kioskanalyzer/internal/domain"
)

type purchaseCmd struct {
	item string
	qty  float64
	cost float64
}

func (*purchaseCmd) Name() string     { return "purchase" }
func (*purchaseCmd) Synopsis() string { return "record a stock purchase" }
func (*purchaseCmd) Usage() string {
	return `kioskctl purchase -item <name> -qty <quantity> -cost <total cost>

  Appends a purchase and folds it into inventory at weighted-average cost.
`
}

func (c *purchaseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.item, "item", "", "Item name")
	f.Float64Var(&c.qty, "qty", 0, "Quantity purchased")
	f.Float64Var(&c.cost, "cost", 0, "Total cost of the purchase")
}

func (c *purchaseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		fail("-item is required")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	p, err := a.service.RecordPurchase(ctx, domain.PurchaseRequest{ItemName: c.item, Quantity: c.qty, TotalCost: c.cost})
	if err != nil {
		fail("record purchase: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded purchase of %g %s for %.2f\n", p.Quantity, p.ItemName, p.TotalCost)
	return subcommands.ExitSuccess
}

type saleCmd struct {
	item    string
	qty     float64
	revenue float64
}

func (*saleCmd) Name() string     { return "sale" }
func (*saleCmd) Synopsis() string { return "record a sale" }
func (*saleCmd) Usage() string {
	return `kioskctl sale -item <name> -qty <quantity> -revenue <revenue>

  Appends a sale. Inventory quantities are not changed by sales.
`
}

func (c *saleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.item, "item", "", "Item name")
	f.Float64Var(&c.qty, "qty", 0, "Quantity sold")
	f.Float64Var(&c.revenue, "revenue", 0, "Revenue of the sale")
}

func (c *saleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.item == "" {
		fail("-item is required")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	s, err := a.service.RecordSale(ctx, domain.SaleRequest{ItemName: c.item, Quantity: c.qty, Revenue: c.revenue})
	if err != nil {
		fail("record sale: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded sale of %g %s for %.2f\n", s.Quantity, s.ItemName, s.Revenue)
	return subcommands.ExitSuccess
}
