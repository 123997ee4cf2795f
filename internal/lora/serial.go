// Package lora carries rover traffic over an E32-style transparent LoRa
// serial module: drive commands downlink, status and acks uplink.
// Lines are newline-delimited text.
package lora

import (
	"fmt"
	"log"

	"FogRover/internal/device"
)

// MaxPayload is the E32 sub-packet size in transparent mode. Longer lines
// are split by the module and may interleave with traffic from other nodes.
const MaxPayload = 58

// Open opens the LoRa module's serial port (e.g. /dev/serial0).
func Open(dev string, baud int) (device.Device, error) {
	d, err := device.NewSerialDevice(dev, baud)
	if err != nil {
		return nil, fmt.Errorf("open lora module: %w", err)
	}
	log.Printf("[lora] module open on %s", d)
	return d, nil
}

func writeFrame(dev device.Device, line string) error {
	if len(line)+1 > MaxPayload {
		log.Printf("[lora] frame of %d bytes exceeds %d byte packet", len(line)+1, MaxPayload)
	}
	return dev.WriteLine(line)
}
