package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/community-board/internal/core/domain"
	"github.com/99minutos/community-board/internal/core/ports"
)

const (
	stateCollection = "state_documents"
	defaultTimeout  = 10 * time.Second
)

// Config captures the minimal settings required to reach the state database.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// StateStorage keeps each state document as one MongoDB document whose _id is
// the storage key. The JSON payload is stored verbatim as a string.
type StateStorage struct {
	coll   *mongo.Collection
	client *mongo.Client
}

var _ ports.Storage = (*StateStorage)(nil)

func NewStateStorage(db *mongo.Database) *StateStorage {
	return &StateStorage{coll: db.Collection(stateCollection)}
}

// Open connects to MongoDB, verifies connectivity with a ping, and returns a
// storage bound to cfg.Database. Close disconnects the client.
func Open(ctx context.Context, cfg Config) (*StateStorage, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := NewStateStorage(client.Database(cfg.Database))
	s.client = client
	return s, nil
}

func (s *StateStorage) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

type mongoStateDocument struct {
	Key       string `bson:"_id"`
	Document  string `bson:"document"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (s *StateStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var doc mongoStateDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("find state: %w", err)
	}
	return []byte(doc.Document), nil
}

func (s *StateStorage) Save(ctx context.Context, key string, value []byte) error {
	doc := mongoStateDocument{
		Key:       key,
		Document:  string(value),
		UpdatedAt: time.Now().UTC().Unix(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (s *StateStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

func (s *StateStorage) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
