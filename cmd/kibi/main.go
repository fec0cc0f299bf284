package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xyproto/kibi"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		logPath     string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", kibi.DefaultConfigPath(), "path to the configuration file")
	flag.StringVar(&logPath, "log", os.Getenv("KIBI_LOG"), "write a debug log to this file")
	flag.BoolVar(&showVersion, "version", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kibi [flags] [filename]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("kibi %s\n", kibi.Version)
		return 0
	}
	if flag.NArg() > 1 {
		flag.Usage()
		return 2
	}

	cfg, err := kibi.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := kibi.NewLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	t, err := kibi.OpenTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer t.Close()

	// restore the terminal before a panic message is printed
	defer func() {
		if r := recover(); r != nil {
			t.Close()
			panic(r)
		}
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		t.Close()
		logger.Info("terminated", "signal", sig.String())
		os.Exit(1)
	}()

	e := kibi.New(t, kibi.Options{Config: cfg, Logger: logger})
	if flag.NArg() == 1 {
		// a file that can't be read is reported in the message bar
		_ = e.Open(flag.Arg(0))
	}

	if err := e.Run(); err != nil {
		t.Close()
		logger.Error("editor stopped", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
