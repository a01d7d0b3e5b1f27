// Command attach performs one attach exchange against a running attachd
// target: it creates the channel, triggers the enqueue over the target's
// diagnostics endpoint, sends the command (v2), and prints the reply.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/GriffinCanCode/AttachKit/client"
	"github.com/GriffinCanCode/AttachKit/internal/config"
)

func main() {
	target := flag.String("target", "http://127.0.0.1:7199", "Target diagnostics base URL")
	prefix := flag.String("prefix", "", "Channel namespace prefix (must match the target)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall exchange timeout")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: attach [flags] <command> [args...]")
		os.Exit(2)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	if *prefix == "" {
		*prefix = config.DefaultNamePrefix()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	channelName := fmt.Sprintf("%s%s.sock", *prefix, uuid.New().String()[:8])
	endpoint, err := client.Listen(channelName)
	if err != nil {
		log.Fatalf("Failed to create channel: %v", err)
	}
	defer endpoint.Close()
	defer os.Remove(channelName)

	resp, err := client.Trigger(ctx, *target, client.TriggerRequest{
		Version:     2,
		ChannelName: channelName,
	})
	if err != nil {
		log.Fatalf("Trigger failed: %v", err)
	}
	if resp.Status != 0 {
		log.Fatalf("Enqueue rejected: %s (%d)", resp.StatusText, resp.Status)
	}

	if err := endpoint.Accept(); err != nil {
		log.Fatalf("Target never opened the channel: %v", err)
	}
	if err := endpoint.SendRequest(command, args...); err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}

	code, payload, err := endpoint.ReadReply()
	if err != nil {
		log.Fatalf("Failed to read reply: %v", err)
	}

	os.Stdout.Write(payload)
	if code != 0 {
		os.Exit(1)
	}
}
