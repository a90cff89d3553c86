package services

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"valpomap/models"
	"valpomap/utils/errors"
)

const (
	defaultTimeout  = 5 * time.Second
	poiListCacheKey = "pois:all"
	poiListCacheTTL = 5 * time.Minute
)

// ErrPOINotFound is returned when an id matches no stored POI.
var ErrPOINotFound = errors.NewAPIError("NOT_FOUND", "POI non trovato", http.StatusNotFound)

// PoiChanges is the update payload: a full replacement of the editable
// fields. Location is deliberately absent, coordinates are fixed at creation.
type PoiChanges struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Category    string `json:"category"`
}

// PoiStore is the CRUD contract over POI records.
type PoiStore interface {
	Create(ctx context.Context, poi models.POI) (*models.POI, error)
	List(ctx context.Context) ([]models.POI, error)
	Update(ctx context.Context, id string, changes PoiChanges) (*models.POI, error)
	Delete(ctx context.Context, id string) (*models.POI, error)
}

// PoiService implements PoiStore on MongoDB with a Redis read-through cache
// for the full listing. Every mutation drops the cached list.
type PoiService struct {
	collection  *mongo.Collection
	database    *mongo.Database
	RedisClient *redis.Client
}

func NewPoiService() *PoiService {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is not set")
	}

	// Connect to MongoDB; give up after 5s instead of the driver default
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB")

	database := client.Database("valpomap")
	service := &PoiService{
		collection: database.Collection("pois"),
		database:   database,
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Fatal("REDIS_ADDR environment variable is not set")
	}
	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		log.Fatal("REDIS_DB environment variable is not set")
	}
	redisDB, err := strconv.Atoi(redisDBStr)
	if err != nil {
		log.Fatalf("Invalid REDIS_DB value: %v", err)
	}
	service.RedisClient = redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   redisDB,
	})
	if err := service.RedisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Info("Connected to Redis")

	return service
}

// Database exposes the shared Mongo handle so the user service can hang its
// collection off the same connection.
func (s *PoiService) Database() *mongo.Database {
	return s.database
}

// ValidateNewPOI checks a candidate POI before insertion: name, description
// and category non-empty, location a well-formed point. The category value
// itself is not checked against models.Categories; unknown values fall back
// to Uncategorized in the view, not here.
func ValidateNewPOI(poi models.POI) *errors.APIError {
	if poi.Name == "" {
		return errors.Validation("Name is required")
	}
	if poi.Description == "" {
		return errors.Validation("Description is required")
	}
	if poi.Category == "" {
		return errors.Validation("Category is required")
	}
	return ValidateGeoPoint(poi.Location)
}

// ValidateGeoPoint checks the GeoJSON shape: a "Point" with exactly two
// finite coordinates, [lng, lat].
func ValidateGeoPoint(location models.GeoPoint) *errors.APIError {
	if location.Type != "Point" {
		return errors.Validation("Location type must be \"Point\"")
	}
	if len(location.Coordinates) != 2 {
		return errors.Validation("Location coordinates must be [lng, lat]")
	}
	for _, c := range location.Coordinates {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return errors.Validation("Location coordinates must be finite numbers")
		}
	}
	lat, lng := location.LatLng()
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return errors.Validation("Location coordinates out of range")
	}
	return nil
}

func validateChanges(changes PoiChanges) *errors.APIError {
	if changes.Category == "" {
		return errors.Validation("Category is required")
	}
	if changes.Name == "" {
		return errors.Validation("Name is required")
	}
	if changes.Description == "" {
		return errors.Validation("Description is required")
	}
	return nil
}

// Create validates and persists one POI, stamping server-side timestamps,
// and returns the record with its assigned id.
func (s *PoiService) Create(ctx context.Context, poi models.POI) (*models.POI, error) {
	if err := ValidateNewPOI(poi); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	poi.ID = primitive.NilObjectID
	poi.CreatedAt = now
	poi.UpdatedAt = now

	result, err := s.collection.InsertOne(ctx, poi)
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to create POI", http.StatusInternalServerError)
	}
	poi.ID = result.InsertedID.(primitive.ObjectID)

	s.invalidateListCache(ctx)
	log.WithFields(log.Fields{"id": poi.ID.Hex(), "category": poi.Category}).Info("POI created")
	return &poi, nil
}

// List returns every POI in store-native order, from the Redis cache when
// warm. Cache failures fall through to Mongo.
func (s *PoiService) List(ctx context.Context) ([]models.POI, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if cached, err := s.RedisClient.Get(ctx, poiListCacheKey).Result(); err == nil {
		var pois []models.POI
		if err := json.Unmarshal([]byte(cached), &pois); err == nil {
			return pois, nil
		}
		log.Warn("Dropping undecodable POI list cache entry")
		s.RedisClient.Del(ctx, poiListCacheKey)
	}

	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to load POIs", http.StatusInternalServerError)
	}
	defer cursor.Close(ctx)

	pois := []models.POI{}
	if err := cursor.All(ctx, &pois); err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to decode POIs", http.StatusInternalServerError)
	}

	if poisJSON, err := json.Marshal(pois); err == nil {
		if err := s.RedisClient.Set(ctx, poiListCacheKey, poisJSON, poiListCacheTTL).Err(); err != nil {
			log.Warnf("Failed to cache POI list: %v", err)
		}
	}

	return pois, nil
}

// Update replaces the editable fields of one POI and refreshes updatedAt.
// The stored location is untouched. Returns the record after the update.
func (s *PoiService) Update(ctx context.Context, id string, changes PoiChanges) (*models.POI, error) {
	if err := validateChanges(changes); err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":        changes.Name,
		"description": changes.Description,
		"category":    changes.Category,
		"updatedAt":   time.Now().UTC(),
	}
	update := bson.M{"$set": set}
	if changes.Link != "" {
		set["link"] = changes.Link
	} else {
		update["$unset"] = bson.M{"link": ""}
	}

	var poi models.POI
	err = s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&poi)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPOINotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to update POI", http.StatusInternalServerError)
	}

	s.invalidateListCache(ctx)
	log.WithField("id", poi.ID.Hex()).Info("POI updated")
	return &poi, nil
}

// Delete removes one POI and returns it as it existed before deletion, so
// the caller can reconcile its view.
func (s *PoiService) Delete(ctx context.Context, id string) (*models.POI, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var poi models.POI
	err = s.collection.FindOneAndDelete(ctx, bson.M{"_id": objID}).Decode(&poi)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPOINotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Failed to delete POI", http.StatusInternalServerError)
	}

	s.invalidateListCache(ctx)
	log.WithField("id", poi.ID.Hex()).Info("POI deleted")
	return &poi, nil
}

func (s *PoiService) invalidateListCache(ctx context.Context) {
	if err := s.RedisClient.Del(ctx, poiListCacheKey).Err(); err != nil {
		log.Warnf("Failed to invalidate POI list cache: %v", err)
	}
}
