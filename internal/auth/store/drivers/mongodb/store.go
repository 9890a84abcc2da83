// Package mongodb implements the auth store on a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/iic/internal/auth/domain"
	"github.com/aussiebroadwan/iic/internal/auth/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const clientsCollection = "clients"

type Store struct {
	client  *mongo.Client
	clients *mongo.Collection
}

var _ store.Store = (*Store)(nil)

type clientDoc struct {
	ID               string     `bson:"_id"`
	Name             string     `bson:"name"`
	Email            string     `bson:"email"`
	PasswordHash     string     `bson:"password_hash"`
	RefreshTokenHash string     `bson:"refresh_token_hash,omitempty"`
	RefreshExpiresAt *time.Time `bson:"refresh_expires_at,omitempty"`
	SessionVersion   int64      `bson:"session_version"`
	CreatedAt        time.Time  `bson:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at"`
}

// NewStore connects to uri and verifies the server answers.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	const op = "mongodb.NewStore"

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: connect: %w", op, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Store{
		client:  client,
		clients: client.Database(database).Collection(clientsCollection),
	}, nil
}

// ApplyMigrations creates the indexes the store relies on. Creating an
// index that already exists is a no-op.
func (s *Store) ApplyMigrations(ctx context.Context) error {
	_, err := s.clients.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{
			Keys:    bson.D{{Key: "refresh_expires_at", Value: 1}},
			Options: options.Index().SetSparse(true).SetName("refresh_expires_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("clients indexes: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Clients() store.Clients { return &clientsRepo{coll: s.clients} }

type clientsRepo struct {
	coll *mongo.Collection
}

func (r *clientsRepo) findOne(ctx context.Context, filter bson.D) (domain.Client, error) {
	var doc clientDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Client{}, store.ErrNotFound
		}
		return domain.Client{}, err
	}
	return mapClient(doc), nil
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	_, err := r.coll.InsertOne(ctx, clientDoc{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		PasswordHash:   c.PasswordHash,
		SessionVersion: 0,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *clientsRepo) UpdatePasswordHash(ctx context.Context, clientID, newHash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: clientID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "password_hash", Value: newHash},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *clientsRepo) SetRefreshToken(
	ctx context.Context,
	clientID, tokenHash string,
	expiresAt time.Time,
	expectedVersion int64,
) (int64, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: clientID},
			{Key: "session_version", Value: expectedVersion},
		},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "refresh_token_hash", Value: tokenHash},
				{Key: "refresh_expires_at", Value: expiresAt.UTC()},
				{Key: "updated_at", Value: time.Now().UTC()},
			}},
			{Key: "$inc", Value: bson.D{{Key: "session_version", Value: int64(1)}}},
		},
	)
	if err != nil {
		return 0, err
	}
	if res.MatchedCount == 1 {
		return expectedVersion + 1, nil
	}

	if _, err := r.GetClientByID(ctx, clientID); err != nil {
		return 0, err
	}
	return 0, store.ErrStale
}

func clearSession(now time.Time) bson.D {
	return bson.D{
		{Key: "$unset", Value: bson.D{
			{Key: "refresh_token_hash", Value: ""},
			{Key: "refresh_expires_at", Value: ""},
		}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: now}}},
		{Key: "$inc", Value: bson.D{{Key: "session_version", Value: int64(1)}}},
	}
}

func (r *clientsRepo) ClearRefreshToken(ctx context.Context, clientID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: clientID}},
		clearSession(time.Now().UTC()),
	)
	return err
}

func (r *clientsRepo) ClearExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: "refresh_expires_at", Value: bson.D{{Key: "$lte", Value: now.UTC()}}}},
		clearSession(now.UTC()),
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func mapClient(doc clientDoc) domain.Client {
	c := domain.Client{
		ID:               doc.ID,
		Name:             doc.Name,
		Email:            doc.Email,
		PasswordHash:     doc.PasswordHash,
		RefreshTokenHash: doc.RefreshTokenHash,
		SessionVersion:   doc.SessionVersion,
		CreatedAt:        doc.CreatedAt.UTC(),
		UpdatedAt:        doc.UpdatedAt.UTC(),
	}
	if doc.RefreshExpiresAt != nil {
		t := doc.RefreshExpiresAt.UTC()
		c.RefreshExpiresAt = &t
	}
	return c
}
