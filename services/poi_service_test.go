package services

import (
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valpomap/models"
)

func validPoi() models.POI {
	return models.POI{
		Name:        "Castello",
		Description: "Vista panoramica",
		Category:    "Cultura",
		Location:    models.GeoPoint{Type: "Point", Coordinates: []float64{11.0, 45.5}},
	}
}

func TestValidateNewPOIAccepts(t *testing.T) {
	assert.Nil(t, ValidateNewPOI(validPoi()))

	withLink := validPoi()
	withLink.Link = "https://example.com/castello"
	assert.Nil(t, ValidateNewPOI(withLink), "link is optional")
}

func TestValidateNewPOIRequiredFields(t *testing.T) {
	cases := map[string]func(*models.POI){
		"name":        func(p *models.POI) { p.Name = "" },
		"description": func(p *models.POI) { p.Description = "" },
		"category":    func(p *models.POI) { p.Category = "" },
	}
	for field, clear := range cases {
		poi := validPoi()
		clear(&poi)
		err := ValidateNewPOI(poi)
		require.NotNil(t, err, field)
		assert.Equal(t, http.StatusBadRequest, err.Status, field)
	}
}

func TestValidateGeoPointShape(t *testing.T) {
	bad := []models.GeoPoint{
		{Type: "Polygon", Coordinates: []float64{11.0, 45.5}},
		{Type: "Point", Coordinates: []float64{11.0}},
		{Type: "Point", Coordinates: []float64{11.0, 45.5, 7.0}},
		{Type: "Point", Coordinates: nil},
		{Type: "Point", Coordinates: []float64{math.NaN(), 45.5}},
		{Type: "Point", Coordinates: []float64{11.0, math.Inf(1)}},
		{Type: "Point", Coordinates: []float64{11.0, 91.0}},
		{Type: "Point", Coordinates: []float64{-181.0, 45.5}},
	}
	for i, point := range bad {
		err := ValidateGeoPoint(point)
		require.NotNil(t, err, "case %d", i)
		assert.Equal(t, http.StatusBadRequest, err.Status)
	}

	assert.Nil(t, ValidateGeoPoint(models.GeoPoint{Type: "Point", Coordinates: []float64{11.0, 45.5}}))
}

func TestValidateChangesRequiresCategory(t *testing.T) {
	err := validateChanges(PoiChanges{Name: "Castello", Description: "Vista"})
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.Status)

	assert.Nil(t, validateChanges(PoiChanges{Name: "Castello", Description: "Vista", Category: "Cultura"}))
	assert.Nil(t, validateChanges(PoiChanges{Name: "Castello", Description: "Vista", Category: "Cultura", Link: "https://x"}))
}
