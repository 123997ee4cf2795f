// Package main is the entry point of the FogRover controller.
// It initializes the logger, loads the configuration, builds the system
// (peripherals, control loop, command interface, status sinks) and runs it
// until interrupted.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FogRover/internal/core"
	"FogRover/internal/util"
)

func main() {
	util.SetupLogger()

	cfgPath := flag.String("c", "configs/rover.yml", "path to configuration file")
	sim := flag.Bool("sim", false, "force simulated peripherals")
	addr := flag.String("addr", "", "override http.addr")
	flag.Parse()

	log.Printf("[Main] Using config: %s", *cfgPath)
	cfg, err := core.LoadConfig(*cfgPath)
	if err != nil {
		util.Error("failed to load config: %v", err)
		os.Exit(1)
	}
	if err := (core.Overrides{Sim: *sim, Addr: *addr}).Apply(&cfg); err != nil {
		util.Error("%v", err)
		os.Exit(1)
	}

	sys, err := core.NewSystem(cfg)
	if err != nil {
		util.Error("failed to create system: %v", err)
		os.Exit(1)
	}
	if err := sys.StartAll(); err != nil {
		util.Error("failed to start system: %v", err)
		os.Exit(1)
	}
	util.Info("rover %s running (run %s)", cfg.Robot.ID, sys.RunID)

	// wait for Ctrl+C or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[Main] Shutting down system...")
	sys.StopAll()
	log.Println("[Main] System stopped cleanly.")
}
