// Package mongo provides the MongoDB-backed implementation of the
// storage.Storage interface.
//
// A single *mongo.Client is created at startup and shared by every request;
// the driver keeps its own connection pool and is safe for concurrent use.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aanand-mishra/tank-man-api/internal/config"
	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/types"
)

type Mongo struct {
	client   *mongo.Client
	profiles *mongo.Collection
	tanks    *mongo.Collection
}

// New connects to cfg.Storage.MongoURL and verifies the connection with a
// ping. Both are bounded by cfg.Storage.ConnectTimeout.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Storage.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Storage.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("mongo.New: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.New: ping: %w", err)
	}

	return NewFromClient(client, cfg.Storage.Database), nil
}

// NewFromClient wraps an already connected client.
func NewFromClient(client *mongo.Client, database string) *Mongo {
	db := client.Database(database)
	return &Mongo{
		client:   client,
		profiles: db.Collection(storage.ProfilesCollection),
		tanks:    db.Collection(storage.TanksCollection),
	}
}

// tankDocument is the stored shape of a tank. The _id is a native ObjectID,
// which tank() renders as a hex string for clients.
type tankDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Location *string            `bson:"location"`
	Lat      *float64           `bson:"lat"`
	Long     *float64           `bson:"long"`
}

func newTankDocument(t types.Tank) tankDocument {
	return tankDocument{
		Location: t.Location,
		Lat:      t.Lat,
		Long:     t.Long,
	}
}

func (d tankDocument) tank() types.Tank {
	return types.Tank{
		ID:       types.String(d.ID.Hex()),
		Location: d.Location,
		Lat:      d.Lat,
		Long:     d.Long,
	}
}

func (m *Mongo) CreateProfile(ctx context.Context, p types.Profile) error {
	if p.ID == nil {
		return errors.New("CreateProfile: profile id is not set")
	}
	if _, err := m.profiles.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("CreateProfile: insert: %w", err)
	}
	return nil
}

func (m *Mongo) GetProfile(ctx context.Context) (types.Profile, error) {
	var p types.Profile
	err := m.profiles.FindOne(ctx, bson.D{}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Profile{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Profile{}, fmt.Errorf("GetProfile: find: %w", err)
	}
	return p, nil
}

func (m *Mongo) CreateTank(ctx context.Context, t types.Tank) (string, error) {
	res, err := m.tanks.InsertOne(ctx, newTankDocument(t))
	if err != nil {
		return "", fmt.Errorf("CreateTank: insert: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("CreateTank: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (m *Mongo) GetTankByID(ctx context.Context, id string) (types.Tank, error) {
	oid, err := objectID(id)
	if err != nil {
		return types.Tank{}, err
	}

	var doc tankDocument
	err = m.tanks.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Tank{}, storage.ErrNotFound
	}
	if err != nil {
		return types.Tank{}, fmt.Errorf("GetTankByID: find: %w", err)
	}
	return doc.tank(), nil
}

func (m *Mongo) GetTanks(ctx context.Context, limit int64) ([]types.Tank, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cur, err := m.tanks.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("GetTanks: find: %w", err)
	}
	defer cur.Close(ctx)

	tanks := make([]types.Tank, 0)
	for cur.Next(ctx) {
		var doc tankDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("GetTanks: decode: %w", err)
		}
		tanks = append(tanks, doc.tank())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("GetTanks: cursor: %w", err)
	}

	return tanks, nil
}

// ReplaceTankByID reports ErrNotFound only when no document matched. A
// replacement that leaves the document unchanged still succeeds.
func (m *Mongo) ReplaceTankByID(ctx context.Context, id string, t types.Tank) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := m.tanks.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, newTankDocument(t))
	if err != nil {
		return fmt.Errorf("ReplaceTankByID: replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteTankByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := m.tanks.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("DeleteTankByID: delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// objectID parses a hex id. An id that is not a valid ObjectID cannot match
// any stored tank, so it is reported as ErrNotFound.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", storage.ErrNotFound, err.Error())
	}
	return oid, nil
}
