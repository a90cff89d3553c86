package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Uncategorized is the fallback bucket for POIs whose category is empty or
// not part of Categories. It is never pre-seeded and never sent to the server.
const Uncategorized = "Uncategorized"

// Categories is the single source of the category enumeration, shared by the
// server (via GET /categories) and the front-end legend.
var Categories = []string{
	"Eventi",
	"Cultura",
	"Natura",
	"Sport",
	"Enograstronomia",
	"Ospitalità",
	"Univalpo",
}

// KnownCategory reports whether name is part of the fixed enumeration.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

type POI struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Link        string             `json:"link,omitempty" bson:"link,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Location    GeoPoint           `json:"location" bson:"location"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude],
// in that order, both in storage and on the wire.
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// LatLng projects the GeoJSON [lng, lat] pair into rendering order.
// This is the only place the axis order is flipped; everything that needs
// lat/lng goes through here.
func (g GeoPoint) LatLng() (lat, lng float64) {
	return g.Coordinates[1], g.Coordinates[0]
}
