package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// serviceDocument документ коллекции services
type serviceDocument struct {
	ID                string               `bson:"_id"`
	Name              string               `bson:"name"`
	Description       string               `bson:"description"`
	Category          string               `bson:"category"`
	BasePrice         primitive.Decimal128 `bson:"basePrice"`
	PriceUnit         string               `bson:"priceUnit"`
	EstimatedDuration int                  `bson:"estimatedDuration"`
	MinimumRooms      int                  `bson:"minimumRooms"`
	IncludedTasks     []string             `bson:"includedTasks,omitempty"`
	ImageURL          string               `bson:"imageURL,omitempty"`
	IsAvailable       bool                 `bson:"isAvailable"`
	IsPopular         bool                 `bson:"isPopular"`
}

func (d serviceDocument) toDomain() (*domain.Service, error) {
	price, err := decimal.NewFromString(d.BasePrice.String())
	if err != nil {
		return nil, fmt.Errorf("%w: service %s: basePrice %q: %v", ErrDecode, d.ID, d.BasePrice.String(), err)
	}

	return &domain.Service{
		ID:                       d.ID,
		Name:                     d.Name,
		Description:              d.Description,
		Category:                 domain.ServiceCategory(d.Category),
		BasePrice:                price,
		PriceUnit:                domain.PriceUnit(d.PriceUnit),
		EstimatedDurationMinutes: d.EstimatedDuration,
		MinimumRooms:             d.MinimumRooms,
		IncludedTasks:            d.IncludedTasks,
		ImageURL:                 d.ImageURL,
		IsAvailable:              d.IsAvailable,
		IsPopular:                d.IsPopular,
	}, nil
}

func fromDomain(s *domain.Service) (serviceDocument, error) {
	price, err := primitive.ParseDecimal128(s.BasePrice.String())
	if err != nil {
		return serviceDocument{}, fmt.Errorf("%w: basePrice %s: %v", ErrInsert, s.BasePrice, err)
	}

	return serviceDocument{
		ID:                s.ID,
		Name:              s.Name,
		Description:       s.Description,
		Category:          string(s.Category),
		BasePrice:         price,
		PriceUnit:         string(s.PriceUnit),
		EstimatedDuration: s.EstimatedDurationMinutes,
		MinimumRooms:      s.MinimumRooms,
		IncludedTasks:     s.IncludedTasks,
		ImageURL:          s.ImageURL,
		IsAvailable:       s.IsAvailable,
		IsPopular:         s.IsPopular,
	}, nil
}
