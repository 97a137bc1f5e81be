package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/tutoring-service/internal/services"
	"github.com/SAP-F-2025/tutoring-service/pkg"
)

var (
	migrateFunc = pkg.Migrate // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *gorm.DB
	videos    services.VideoService
	analytics services.AnalyticsService
	out       io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate                 - create or update all tables")
	fmt.Fprintln(cli.out, "  seed-videos             - insert the sample video catalogue into an empty store")
	fmt.Fprintln(cli.out, "  reconcile-points [-fix] - compare profile totals with the grade ledger")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	reconcileCmd := flag.NewFlagSet("reconcile-points", flag.ContinueOnError)
	reconcileCmd.SetOutput(cli.out)
	reconcileFix := reconcileCmd.Bool("fix", false, "Rewrite drifting totals to the ledger sum.")

	ctx := context.Background()
	switch args[1] {
	case "migrate":
		if err := migrateFunc(cli.db); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "migrations applied")
		return nil
	case "seed-videos":
		n, err := cli.videos.SeedDefaults(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cli.out, "videos already present, nothing seeded")
			return nil
		}
		fmt.Fprintf(cli.out, "seeded %d videos\n", n)
		return nil
	case "reconcile-points":
		if err := reconcileCmd.Parse(args[2:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return errHelp
			}
			return err
		}
		return cli.reconcilePoints(ctx, *reconcileFix)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) reconcilePoints(ctx context.Context, fix bool) error {
	drifts, err := cli.analytics.ReconcilePoints(ctx, fix)
	if err != nil {
		return err
	}
	if len(drifts) == 0 {
		fmt.Fprintln(cli.out, "all profile totals match the ledger")
		return nil
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STUDENT\tPROFILE\tLEDGER")
	for _, d := range drifts {
		fmt.Fprintf(w, "%s\t%d\t%d\n", d.UserID, d.TotalPoints, d.LedgerSum)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if fix {
		fmt.Fprintf(cli.out, "fixed %d profiles\n", len(drifts))
	} else {
		fmt.Fprintf(cli.out, "%d profiles drift, rerun with -fix to rewrite them\n", len(drifts))
	}
	return nil
}
