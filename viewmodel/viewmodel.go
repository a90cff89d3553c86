// Package viewmodel shapes the flat POI list into the structure the map
// renders: one bucket per category, plus a set of categories toggled visible.
// Transitions never mutate the receiver; each returns a fresh View.
package viewmodel

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"valpomap/models"
)

// PlacedPOI is a POI augmented with rendering coordinates. Lat and Lng come
// from GeoPoint.LatLng, so the [lng, lat] wire order is de-inverted exactly
// once.
type PlacedPOI struct {
	models.POI
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// View is the immutable-per-transition view state: POIs bucketed by
// category, and the set of active (visible) categories. Multiple categories
// may be active at once.
type View struct {
	Buckets map[string][]PlacedPOI
	Active  map[string]struct{}
}

// Place derives the rendering coordinates for one POI.
func Place(poi models.POI) PlacedPOI {
	lat, lng := poi.Location.LatLng()
	return PlacedPOI{POI: poi, Lat: lat, Lng: lng}
}

// bucketFor maps a stored category to its display bucket. Unknown or empty
// categories land in Uncategorized, which is created on demand.
func bucketFor(poi models.POI) string {
	if poi.Category == "" || !models.KnownCategory(poi.Category) {
		return models.Uncategorized
	}
	return poi.Category
}

// New partitions pois by category. Every known category is pre-seeded with
// an empty bucket so the legend always shows the full enumeration.
func New(pois []models.POI) View {
	buckets := make(map[string][]PlacedPOI, len(models.Categories))
	for _, category := range models.Categories {
		buckets[category] = []PlacedPOI{}
	}
	for _, poi := range pois {
		bucket := bucketFor(poi)
		buckets[bucket] = append(buckets[bucket], Place(poi))
	}
	return View{Buckets: buckets, Active: map[string]struct{}{}}
}

// Toggle flips the active-set membership of category: active categories are
// deactivated and vice versa. Toggling twice restores the original set.
func (v View) Toggle(category string) View {
	active := make(map[string]struct{}, len(v.Active)+1)
	for c := range v.Active {
		active[c] = struct{}{}
	}
	if _, ok := active[category]; ok {
		delete(active, category)
	} else {
		active[category] = struct{}{}
	}
	return View{Buckets: v.Buckets, Active: active}
}

// IsActive reports whether category is currently toggled visible.
func (v View) IsActive(category string) bool {
	_, ok := v.Active[category]
	return ok
}

// Visible returns the placed POIs of every active category, in category
// enumeration order with Uncategorized last.
func (v View) Visible() []PlacedPOI {
	var visible []PlacedPOI
	for _, category := range append(append([]string{}, models.Categories...), models.Uncategorized) {
		if !v.IsActive(category) {
			continue
		}
		visible = append(visible, v.Buckets[category]...)
	}
	return visible
}

// ApplyCreate adds one service-confirmed record to its bucket, without
// re-fetching the full list.
func (v View) ApplyCreate(poi models.POI) View {
	bucket := bucketFor(poi)
	buckets := v.copyBuckets()
	buckets[bucket] = append(append([]PlacedPOI{}, buckets[bucket]...), Place(poi))
	return View{Buckets: buckets, Active: v.Active}
}

// ApplyUpdate replaces the record wherever it currently lives, re-bucketing
// it if its category changed.
func (v View) ApplyUpdate(poi models.POI) View {
	return v.ApplyDelete(poi.ID).ApplyCreate(poi)
}

// ApplyDelete removes the record with the given id from every bucket.
func (v View) ApplyDelete(id primitive.ObjectID) View {
	buckets := make(map[string][]PlacedPOI, len(v.Buckets))
	for category, placed := range v.Buckets {
		kept := []PlacedPOI{}
		for _, p := range placed {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		buckets[category] = kept
	}
	return View{Buckets: buckets, Active: v.Active}
}

func (v View) copyBuckets() map[string][]PlacedPOI {
	buckets := make(map[string][]PlacedPOI, len(v.Buckets))
	for category, placed := range v.Buckets {
		buckets[category] = placed
	}
	return buckets
}
