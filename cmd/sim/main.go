package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/gridjam/internal/core/observability/log"
	"github.com/zeusync/gridjam/internal/core/scenario"
	"github.com/zeusync/gridjam/internal/injector"
)

func main() {
	level := flag.String("log", "info", "log level: debug, info, warn, error")
	workers := flag.Int("workers", 0, "scenarios run at once, 0 for all")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scenario.yaml|scenario.json...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := injector.InitializeRunner(log.ParseLevel(*level))
	runner.Workers = *workers
	logger := log.Provide()
	defer func() { _ = logger.Sync() }()

	cfgs := make([]*scenario.Config, 0, flag.NArg())
	for _, path := range flag.Args() {
		cfg, err := scenario.LoadFile(path)
		if err != nil {
			logger.Error("load scenario", log.String("path", path), log.Error(err))
			os.Exit(1)
		}
		cfgs = append(cfgs, cfg)
	}

	results, err := runner.RunAll(ctx, cfgs)
	for _, res := range results {
		switch {
		case res.Name == "":
		case res.Err != nil:
			fmt.Fprintln(os.Stderr, res)
		default:
			fmt.Println(res)
		}
	}
	if err != nil {
		logger.Error("run scenarios", log.Error(err))
		os.Exit(1)
	}
}
