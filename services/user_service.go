package services

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"valpomap/models"
	"valpomap/utils/errors"
)

// UserService handles editor accounts. It shares the Mongo connection owned
// by the POI service.
type UserService struct {
	collection *mongo.Collection
	jwtSecret  string
}

func NewUserService(db *mongo.Database, jwtSecret string) *UserService {
	collection := db.Collection("users")

	// Ensure usernames are unique
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(context.Background(), indexModel); err != nil {
		log.Warnf("Failed to create unique index on users: %v", err)
	}

	return &UserService{
		collection: collection,
		jwtSecret:  jwtSecret,
	}
}

// GetUser retrieves a user by public id.
func (s *UserService) GetUser(ctx context.Context, publicID string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"public_id": publicID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, errors.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}
