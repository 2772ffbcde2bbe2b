package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripDay is one day of a generated itinerary.
type TripDay struct {
	Day        int      `bson:"day" json:"day"`
	Title      string   `bson:"title" json:"title"`
	Activities []string `bson:"activities" json:"activities"`
}

// Trip represents a saved trip itinerary in the trips collection. The
// day-by-day plan comes from the itinerary generator and is stored verbatim.
type Trip struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Destination string             `bson:"destination" json:"destination"`
	StartDate   time.Time          `bson:"startDate" json:"startDate"`
	EndDate     time.Time          `bson:"endDate" json:"endDate"`
	Interests   []string           `bson:"interests,omitempty" json:"interests,omitempty"`
	Days        []TripDay          `bson:"days" json:"days"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
