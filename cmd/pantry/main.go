package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idilsaglam/pantry/internal/cli"
	"github.com/idilsaglam/pantry/internal/config"
	"github.com/idilsaglam/pantry/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	file := flag.String("file", "", "pantry data file (default ~/.pantry/pantry.json, env PANTRY_FILE)")
	theme := flag.String("theme", "", "classic, neon or mono (env PANTRY_THEME)")
	color := flag.Bool("color", false, "force colour output")
	noColor := flag.Bool("no-color", false, "disable colour output")
	flag.Parse()

	cfg, err := config.Resolve(config.Flags{File: *file, Theme: *theme})
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}
	ui.SetTheme(cfg.Theme)
	if *color || *noColor {
		ui.SetColorForcing(*color, *noColor)
	}

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(args, cli.Options{Config: cfg, Ctx: ctx})
	stop()
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
