package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/GriffinCanCode/crosswalk/internal/client"
	"github.com/GriffinCanCode/crosswalk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/crosswalk/internal/shared/id"
)

func main() {
	// Parse flags
	addr := flag.String("addr", "http://localhost:8080", "Status server base URL")
	status := flag.Bool("status", false, "Print the signal status instead of pressing")
	timeout := flag.Duration("timeout", 10*time.Second, "Overall deadline including retries")
	flag.Parse()

	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	// One trace per invocation so the server logs can be correlated
	ctx = tracing.WithTraceID(ctx, tracing.TraceID(id.NewRequestID()))

	c := client.New(*addr, client.DefaultOptions())

	if *status {
		s, err := c.Status(ctx)
		if err != nil {
			log.Fatalf("crosswalk-press: %v", err)
		}
		fmt.Printf("vehicles: %s  pedestrians: %s  crossing: %t  pending: %t\n",
			s.Vehicle, s.Pedestrian, s.CrossingActive, s.Pending)
		fmt.Printf("waits: n=%d mean=%.2fs p95=%.2fs\n", s.Waits.Count, s.Waits.Mean, s.Waits.P95)
		return
	}

	resp, err := c.Press(ctx)
	if err != nil {
		log.Fatalf("crosswalk-press: %v", err)
	}
	fmt.Printf("%s (%s) while vehicles %s\n", resp.Result, resp.RequestID, resp.Vehicle)
}
