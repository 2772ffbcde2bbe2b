// Package itinerary generates day-by-day trip plans through an AI provider.
package itinerary

import (
	"context"
	"time"
)

// Request describes the trip to plan.
type Request struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
}

// Day is one day of a generated plan.
type Day struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
}

// Plan is a generated itinerary.
type Plan struct {
	Destination string `json:"destination"`
	Days        []Day  `json:"days"`
	Notes       string `json:"notes"`
}

// Generator produces a plan for a trip request. Implementations call an
// external provider; the handler layer treats failures as terminal for the
// request.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Plan, error)
}
