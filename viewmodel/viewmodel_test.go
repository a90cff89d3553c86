package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"valpomap/models"
)

func testPoi(name, category string, lng, lat float64) models.POI {
	return models.POI{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: name + " description",
		Category:    category,
		Location:    models.GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}},
	}
}

func TestNewSeedsEveryKnownCategory(t *testing.T) {
	view := New(nil)

	assert.Len(t, view.Buckets, len(models.Categories))
	for _, category := range models.Categories {
		bucket, ok := view.Buckets[category]
		require.True(t, ok, category)
		assert.Empty(t, bucket)
	}
	_, ok := view.Buckets[models.Uncategorized]
	assert.False(t, ok, "Uncategorized is created on demand, not pre-seeded")
}

func TestNewPartitionsByCategory(t *testing.T) {
	castello := testPoi("Castello", "Cultura", 11.0, 45.5)
	sagra := testPoi("Sagra", "Eventi", 11.1, 45.4)
	misterioso := testPoi("Misterioso", "Alieni", 11.2, 45.3)

	view := New([]models.POI{castello, sagra, misterioso})

	require.Len(t, view.Buckets["Cultura"], 1)
	assert.Equal(t, castello.ID, view.Buckets["Cultura"][0].ID)
	require.Len(t, view.Buckets["Eventi"], 1)
	require.Len(t, view.Buckets[models.Uncategorized], 1, "unknown category falls back")
	assert.Equal(t, misterioso.ID, view.Buckets[models.Uncategorized][0].ID)
}

func TestPlaceDeInvertsAxisOrder(t *testing.T) {
	poi := testPoi("Castello", "Cultura", 11.0, 45.5)

	placed := Place(poi)

	assert.Equal(t, 45.5, placed.Lat)
	assert.Equal(t, 11.0, placed.Lng)
	// The stored coordinates are untouched
	assert.Equal(t, []float64{11.0, 45.5}, placed.Location.Coordinates)
}

func TestToggleTwiceRestoresActiveSet(t *testing.T) {
	view := New(nil).Toggle("Natura")
	assert.True(t, view.Toggle("Cultura").Toggle("Cultura").IsActive("Natura"))
	assert.False(t, view.Toggle("Cultura").Toggle("Cultura").IsActive("Cultura"))
}

func TestToggleSupportsMultipleActiveCategories(t *testing.T) {
	view := New(nil).Toggle("Cultura").Toggle("Sport")

	assert.True(t, view.IsActive("Cultura"))
	assert.True(t, view.IsActive("Sport"))
	assert.False(t, view.IsActive("Eventi"))
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	before := New(nil).Toggle("Cultura")
	before.Toggle("Cultura")
	before.Toggle("Sport")

	assert.True(t, before.IsActive("Cultura"))
	assert.False(t, before.IsActive("Sport"))
}

func TestVisibleFiltersByActiveSet(t *testing.T) {
	castello := testPoi("Castello", "Cultura", 11.0, 45.5)
	sentiero := testPoi("Sentiero", "Natura", 11.2, 45.6)

	view := New([]models.POI{castello, sentiero}).Toggle("Cultura")

	visible := view.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, castello.ID, visible[0].ID)

	visible = view.Toggle("Natura").Visible()
	assert.Len(t, visible, 2)
}

func TestApplyCreateAddsIncrementally(t *testing.T) {
	view := New(nil)
	castello := testPoi("Castello", "Cultura", 11.0, 45.5)

	after := view.ApplyCreate(castello)

	require.Len(t, after.Buckets["Cultura"], 1)
	assert.Empty(t, view.Buckets["Cultura"], "the original view is untouched")
}

func TestApplyUpdateReBucketsOnCategoryChange(t *testing.T) {
	castello := testPoi("Castello", "Cultura", 11.0, 45.5)
	view := New([]models.POI{castello})

	castello.Category = "Eventi"
	after := view.ApplyUpdate(castello)

	assert.Empty(t, after.Buckets["Cultura"])
	require.Len(t, after.Buckets["Eventi"], 1)
	assert.Equal(t, castello.ID, after.Buckets["Eventi"][0].ID)
}

func TestApplyDeleteRemovesFromEveryBucket(t *testing.T) {
	castello := testPoi("Castello", "Cultura", 11.0, 45.5)
	sagra := testPoi("Sagra", "Eventi", 11.1, 45.4)
	view := New([]models.POI{castello, sagra})

	after := view.ApplyDelete(castello.ID)

	assert.Empty(t, after.Buckets["Cultura"])
	assert.Len(t, after.Buckets["Eventi"], 1)
	assert.Len(t, view.Buckets["Cultura"], 1, "the original view is untouched")
}
