package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/5H5KN5/active-learning-simulator/internal/config"
)

func runInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("o", config.DefaultPath(), "Config file path")
	force := fs.Bool("force", false, "Overwrite an existing config file")
	fs.Parse(os.Args[1:])

	if _, err := os.Stat(*path); err == nil && !*force {
		fatal(fmt.Errorf("%s already exists (use -force to overwrite)", *path))
	}

	if err := config.DefaultConfig().Save(*path); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote default config to %s\n", *path)
}
