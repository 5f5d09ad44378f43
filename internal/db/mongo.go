package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoDatabase is used when the URI names no database.
const DefaultMongoDatabase = "resume_builder"

// mongoUser is the stored document shape.
type mongoUser struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (m *mongoUser) toUser() (*User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", m.ID, err)
	}
	return &User{
		ID:           id,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

// MongoUserStore keeps accounts in a "users" collection with unique
// username and email indexes.
type MongoUserStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

// ConnectMongo connects to uri and ensures the collection indexes.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoUserStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(5 * time.Second).
		SetSocketTimeout(45 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	store := &MongoUserStore{client: client, users: client.Database(database).Collection("users")}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return store, nil
}

func (s *MongoUserStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoUserStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CreateUser inserts u, assigning its id and timestamps.
func (s *MongoUserStore) CreateUser(ctx context.Context, u *User) error {
	prepare(u)
	_, err := s.users.InsertOne(ctx, mongoUser{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			field := "email"
			if strings.Contains(err.Error(), "username") {
				field = "username"
			}
			return &ErrDuplicate{Field: field}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *MongoUserStore) findOne(ctx context.Context, filter bson.D) (*User, error) {
	var doc mongoUser
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toUser()
}

// GetUser retrieves a user by id
func (s *MongoUserStore) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

// GetUserByEmail retrieves a user by email
func (s *MongoUserStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// GetUserByUsername retrieves a user by username
func (s *MongoUserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (s *MongoUserStore) exists(ctx context.Context, filter bson.D) (bool, error) {
	n, err := s.users.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return n > 0, nil
}

// CheckEmailExists reports whether an account uses email
func (s *MongoUserStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, bson.D{{Key: "email", Value: email}})
}

// CheckUsernameExists reports whether an account uses username
func (s *MongoUserStore) CheckUsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, bson.D{{Key: "username", Value: username}})
}
