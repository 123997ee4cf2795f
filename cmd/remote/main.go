// Remote operator console:
// - Reads drive codes (F/B/L/R/S) from stdin, one per line
// - Sends them to the rover over LoRa as CTRL lines
// - Prints acks and decoded status uplinks
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"FogRover/internal/command"
	"FogRover/internal/device"
	"FogRover/internal/lora"
	"FogRover/internal/parser"
	"FogRover/internal/util"
)

func main() {
	util.SetupLogger()

	serialDev := flag.String("lora", "/dev/serial0", "LoRa serial device")
	baud := flag.Int("baud", 9600, "serial baud")
	robotID := flag.String("id", lora.Broadcast, "target robot id")
	format := flag.String("format", "csv", "wire format (csv|json)")
	flag.Parse()

	wire, err := parser.ForFormat(*format)
	if err != nil {
		log.Fatalf("%v", err)
	}
	dev, err := lora.Open(*serialDev, *baud)
	if err != nil {
		log.Fatalf("%v", err)
	}
	remote := lora.NewRemote(dev, wire)
	defer func() {
		if cerr := remote.Close(); cerr != nil {
			log.Printf("warning: close lora err: %v", cerr)
		}
	}()

	// uplink printer
	go func() {
		for {
			up, err := remote.Receive()
			if errors.Is(err, device.ErrNotOpen) {
				return
			}
			if err != nil {
				log.Printf("[remote] skip uplink: %v", err)
				continue
			}
			switch {
			case up.Ack != nil:
				fmt.Printf("ack %s\n", up.Ack.Code)
			case up.Status != nil:
				st := up.Status
				fmt.Printf("%s tick=%d %s reading=%d dist=%.0fcm cap=%d alert=%t intent=%s\n",
					st.RobotID, st.Tick, st.Visibility, st.Reading, st.DistanceCM, st.SpeedCap, st.Alert, st.Intent)
			}
		}
	}()

	// operator input
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	log.Printf("[remote] commanding %s via %s; type F/B/L/R/S", *robotID, *serialDev)

	for {
		select {
		case <-stop:
			log.Println("[remote] stopping")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			code := strings.TrimSpace(line)
			if code == "" {
				continue
			}
			intent, err := command.Parse(code)
			if err != nil {
				fmt.Printf("unknown code %q\n", code)
				continue
			}
			if err := remote.Send(*robotID, intent); err != nil {
				log.Printf("[remote] send err: %v", err)
			}
		}
	}
}
