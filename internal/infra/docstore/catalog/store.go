package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// CollectionName коллекция каталога услуг
const CollectionName = "services"

// Query параметры выборки услуг
type Query struct {
	AvailableOnly bool
}

// Store хранилище каталога услуг в MongoDB
type Store struct {
	collection *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(CollectionName)}
}

// NewStoreWithCollection используется, когда коллекция уже открыта (тесты)
func NewStoreWithCollection(collection *mongo.Collection) *Store {
	return &Store{collection: collection}
}

// Get получает услугу по ID
func (s *Store) Get(ctx context.Context, id string) (*domain.Service, error) {
	var doc serviceDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - find %s: %v", ErrQuery, id, err)
	}

	return doc.toDomain()
}

// Query выбирает услуги: сначала популярные, затем по имени
func (s *Store) Query(ctx context.Context, q Query) ([]*domain.Service, error) {
	filter := bson.M{}
	if q.AvailableOnly {
		filter["isAvailable"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "isPopular", Value: -1}, {Key: "name", Value: 1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: Query - find: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	services := make([]*domain.Service, 0)
	for cursor.Next(ctx) {
		var doc serviceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: Query - decode: %v", ErrDecode, err)
		}
		svc, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: Query - cursor: %v", ErrQuery, err)
	}

	return services, nil
}

// Create добавляет услугу в каталог и возвращает её ID.
// Если ID не задан, генерируется новый
func (s *Store) Create(ctx context.Context, svc *domain.Service) (string, error) {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}

	doc, err := fromDomain(svc)
	if err != nil {
		return "", err
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("%w: Create - insert %s: %v", ErrInsert, svc.ID, err)
	}

	return svc.ID, nil
}

// Watch подписывается на изменения коллекции и вызывает onChange на каждое событие.
// Блокируется до отмены ctx или ошибки потока изменений
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := s.collection.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return fmt.Errorf("%w: open: %v", ErrWatch, err)
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		onChange()
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("%w: %v", ErrWatch, err)
	}
	return ctx.Err()
}
