package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dom "github.com/1810649011/my-web-end/internal/domain"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrEmailTaken is reported when registering an email that already has
// an account.
var ErrEmailTaken = errors.New("email already taken")

// UserRepo provides user persistence.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	Create(ctx context.Context, email, passwordHash string) (dom.User, error)
}

type userDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash"`
	CreatedAt    time.Time     `bson:"createdAt"`
}

func (d userDoc) toUser() dom.User {
	return dom.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoUserRepo implements UserRepo with MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo returns a new MongoUserRepo over db's users
// collection.
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection("users")}
}

// EnsureIndexes creates the unique email index that backs
// ErrEmailTaken detection.
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	return nil
}

// GetByEmail returns the user by email, or ErrNotFound.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return dom.User{}, ErrNotFound
	}
	if err != nil {
		return dom.User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.toUser(), nil
}

// Create inserts a new user and returns it.
func (r *MongoUserRepo) Create(ctx context.Context, email, passwordHash string) (dom.User, error) {
	doc := userDoc{
		ID:           bson.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, fmt.Errorf("insert user: %w", err)
	}
	return doc.toUser(), nil
}
