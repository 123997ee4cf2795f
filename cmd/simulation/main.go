// Bridge emulator: answers the rover's "READ <ch>" requests on a serial
// device with a visibility profile cycling clear, light fog, dense fog and
// sensor-off. With -socat it creates the virtual port pair itself.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"FogRover/internal/device"
	"FogRover/internal/util"
)

func main() {
	util.SetupLogger()

	dev := flag.String("dev", "/tmp/ttyBRIDGE", "serial device the emulator listens on")
	baud := flag.Int("baud", 115200, "baud rate")
	socat := flag.String("socat", "", "if set, create a socat pair linking -dev to this path for the rover")
	noise := flag.Int("noise", 40, "uniform noise half-width added to each read")
	flag.Parse()

	var mgr *util.SocatManager
	if *socat != "" {
		mgr = util.NewSocatManager()
		if err := mgr.CreatePair(*dev, *socat, 3*time.Second); err != nil {
			mgr.Cleanup()
			log.Fatalf("create virtual ports: %v", err)
		}
		defer mgr.Cleanup()
		log.Printf("[sim] point hardware.bridge_device at %s", *socat)
	}

	port, err := device.NewSerialDevice(*dev, *baud)
	if err != nil {
		log.Fatalf("open serial: %v", err)
	}
	defer func() {
		if cerr := port.Close(); cerr != nil {
			log.Printf("warning: close serial err: %v", cerr)
		}
	}()

	sensor := device.NewSimAnalog(device.DefaultProfile, *noise)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		_ = port.Close()
	}()

	log.Printf("[sim] bridge emulator on %s", port)
	served := 0
	for {
		line, err := port.ReadLine(time.Second)
		switch {
		case errors.Is(err, device.ErrTimeout):
			continue
		case errors.Is(err, device.ErrNotOpen):
			log.Printf("[sim] stopped after %d reads", served)
			return
		case err != nil:
			log.Printf("[sim] read err: %v", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}
		ch, ok := device.ParseReadRequest(line)
		if !ok {
			continue
		}
		v, _ := sensor.ReadAnalog()
		if err := port.WriteLine(fmt.Sprintf("%d,%d", ch, v)); err != nil {
			log.Printf("[sim] write err: %v", err)
			continue
		}
		served++
		if served%1000 == 0 {
			log.Printf("[sim] served %d reads, current level %d", served, v)
		}
	}
}
