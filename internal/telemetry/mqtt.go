// Package telemetry publishes rover status to an MQTT broker.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"FogRover/internal/model"
)

const connectTimeout = 5 * time.Second

// publisher is the part of mqtt.Client the Publisher needs.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Publisher sends every rendered Status as JSON to
// <prefix>/<robot-id>/status at QoS 0. It never waits on the broker; a
// failed delivery is reported on the following publish.
type Publisher struct {
	client publisher
	topic  string
	last   mqtt.Token
}

// Topic returns the status topic for a robot.
func Topic(prefix, robotID string) string {
	return fmt.Sprintf("%s/%s/status", prefix, robotID)
}

// NewPublisher wraps an already connected client.
func NewPublisher(c publisher, prefix, robotID string) *Publisher {
	return &Publisher{client: c, topic: Topic(prefix, robotID)}
}

// Dial connects to broker and returns the client. The client id carries the
// run id so restarts never collide with a lingering session.
func Dial(broker, robotID, runID string) (mqtt.Client, error) {
	id := "fogrover-" + robotID
	if len(runID) >= 8 {
		id += "-" + runID[:8]
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(id).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Printf("[mqtt] connection lost: %v", err)
		}).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Printf("[mqtt] connected to %s as %s", broker, id)
		})
	c := mqtt.NewClient(opts)
	tok := c.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect %s: timeout", broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", broker, err)
	}
	return c, nil
}

// Publish hands st to the client.
func (p *Publisher) Publish(st model.Status) error {
	var prevErr error
	if p.last != nil {
		select {
		case <-p.last.Done():
			prevErr = p.last.Error()
		default:
		}
	}
	payload, err := json.Marshal(st)
	if err != nil {
		return err
	}
	p.last = p.client.Publish(p.topic, 0, false, payload)
	if prevErr != nil {
		return fmt.Errorf("previous publish to %s: %w", p.topic, prevErr)
	}
	return nil
}
