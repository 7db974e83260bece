package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"kioskanalyzer/internal/report"
)

type reportCmd struct {
	timeframe string
	raw       bool
	format    string
	output    string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the operational analysis report" }
func (*reportCmd) Usage() string {
	return `kioskctl report [-t all|monthly|weekly|daily] [-raw] [-format md|csv|html] [-o file]

  Computes the report for the chosen timeframe. Markdown is rendered for the
  terminal unless -raw is set. -o writes the export to a file instead.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeframe, "t", "all", "Timeframe (all, monthly, weekly, daily)")
	f.BoolVar(&c.raw, "raw", false, "Print raw Markdown instead of rendering it")
	f.StringVar(&c.format, "format", "md", "Output format (md, csv, html)")
	f.StringVar(&c.output, "o", "", "Write the export to this file")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tf, err := report.ParseTimeframe(c.timeframe)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	rep := a.service.Report(ctx, tf)

	var body string
	switch strings.ToLower(c.format) {
	case "md", "markdown":
		body = report.Markdown(rep, a.cfg.Currency)
	case "csv":
		body = report.CSV(rep)
	case "html":
		body, err = report.HTML(rep, a.cfg.Currency)
		if err != nil {
			fail("render html: %v", err)
			return subcommands.ExitFailure
		}
	default:
		fail("unknown format %q", c.format)
		return subcommands.ExitUsageError
	}

	if c.output != "" {
		if err := os.WriteFile(c.output, []byte(body), 0o644); err != nil {
			fail("write %q: %v", c.output, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Report written to %s\n", c.output)
		return subcommands.ExitSuccess
	}

	if !c.styled() {
		fmt.Print(body)
		return subcommands.ExitSuccess
	}
	printMarkdown(body)
	return subcommands.ExitSuccess
}

// styled reports whether the output goes through the terminal renderer.
func (c *reportCmd) styled() bool {
	switch strings.ToLower(c.format) {
	case "md", "markdown":
		return !c.raw
	default:
		return false
	}
}
