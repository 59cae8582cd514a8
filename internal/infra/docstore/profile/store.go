package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// CollectionName коллекция профилей пользователей
const CollectionName = "users"

type addressDocument struct {
	ID           string  `bson:"id"`
	Street       string  `bson:"street"`
	Unit         *string `bson:"unit,omitempty"`
	City         string  `bson:"city"`
	State        string  `bson:"state"`
	ZipCode      string  `bson:"zipCode"`
	Country      string  `bson:"country"`
	IsDefault    bool    `bson:"isDefault"`
	Instructions *string `bson:"instructions,omitempty"`
}

type profileDocument struct {
	ID                       string            `bson:"_id"`
	Email                    string            `bson:"email"`
	FullName                 string            `bson:"fullName"`
	PhoneNumber              string            `bson:"phoneNumber"`
	ProfileImageURL          *string           `bson:"profileImageURL,omitempty"`
	Addresses                []addressDocument `bson:"addresses"`
	PreferredPaymentMethodID *string           `bson:"preferredPaymentMethodId,omitempty"`
	StripeCustomerID         *string           `bson:"stripeCustomerId,omitempty"`
	CreatedAt                time.Time         `bson:"createdAt"`
	UpdatedAt                time.Time         `bson:"updatedAt"`
}

// Patch частичное обновление профиля, nil поля не меняются
type Patch struct {
	FullName                 *string
	PhoneNumber              *string
	Addresses                []domain.Address
	PreferredPaymentMethodID *string
	StripeCustomerID         *string
}

// Store хранилище профилей пользователей в MongoDB
type Store struct {
	collection *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection(CollectionName)}
}

func NewStoreWithCollection(collection *mongo.Collection) *Store {
	return &Store{collection: collection}
}

// Get получает профиль по uid пользователя
func (s *Store) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var doc profileDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - find %s: %v", ErrQuery, userID, err)
	}

	return doc.toDomain(), nil
}

// Create сохраняет новый профиль, ID документа совпадает с uid
func (s *Store) Create(ctx context.Context, p *domain.UserProfile) error {
	if _, err := s.collection.InsertOne(ctx, fromDomain(p)); err != nil {
		return fmt.Errorf("%w: Create - insert %s: %v", ErrInsert, p.ID, err)
	}
	return nil
}

// Update применяет частичное обновление
func (s *Store) Update(ctx context.Context, userID string, patch Patch, now time.Time) error {
	set := bson.M{"updatedAt": now}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		set["phoneNumber"] = *patch.PhoneNumber
	}
	if patch.Addresses != nil {
		set["addresses"] = addressesToDocs(patch.Addresses)
	}
	if patch.PreferredPaymentMethodID != nil {
		set["preferredPaymentMethodId"] = *patch.PreferredPaymentMethodID
	}
	if patch.StripeCustomerID != nil {
		set["stripeCustomerId"] = *patch.StripeCustomerID
	}

	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: Update - %s: %v", ErrUpdate, userID, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (d profileDocument) toDomain() *domain.UserProfile {
	addresses := make([]domain.Address, 0, len(d.Addresses))
	for _, a := range d.Addresses {
		addresses = append(addresses, domain.Address{
			ID:           a.ID,
			Street:       a.Street,
			Unit:         a.Unit,
			City:         a.City,
			State:        a.State,
			ZipCode:      a.ZipCode,
			Country:      a.Country,
			IsDefault:    a.IsDefault,
			Instructions: a.Instructions,
		})
	}

	return &domain.UserProfile{
		ID:                       d.ID,
		Email:                    d.Email,
		FullName:                 d.FullName,
		PhoneNumber:              d.PhoneNumber,
		ProfileImageURL:          d.ProfileImageURL,
		Addresses:                addresses,
		PreferredPaymentMethodID: d.PreferredPaymentMethodID,
		StripeCustomerID:         d.StripeCustomerID,
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
}

func fromDomain(p *domain.UserProfile) profileDocument {
	return profileDocument{
		ID:                       p.ID,
		Email:                    p.Email,
		FullName:                 p.FullName,
		PhoneNumber:              p.PhoneNumber,
		ProfileImageURL:          p.ProfileImageURL,
		Addresses:                addressesToDocs(p.Addresses),
		PreferredPaymentMethodID: p.PreferredPaymentMethodID,
		StripeCustomerID:         p.StripeCustomerID,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}

func addressesToDocs(addresses []domain.Address) []addressDocument {
	docs := make([]addressDocument, 0, len(addresses))
	for _, a := range addresses {
		docs = append(docs, addressDocument{
			ID:           a.ID,
			Street:       a.Street,
			Unit:         a.Unit,
			City:         a.City,
			State:        a.State,
			ZipCode:      a.ZipCode,
			Country:      a.Country,
			IsDefault:    a.IsDefault,
			Instructions: a.Instructions,
		})
	}
	return docs
}
