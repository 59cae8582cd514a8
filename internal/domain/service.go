package domain

import "github.com/shopspring/decimal"

// ServiceCategory groups catalog offerings
type ServiceCategory string

const (
	CategoryRegular ServiceCategory = "regular"
	CategoryDeep    ServiceCategory = "deep"
	CategoryMove    ServiceCategory = "move"
	CategoryOffice  ServiceCategory = "office"
	CategorySpecial ServiceCategory = "special"
)

// PriceUnit defines how the base price of a service scales
type PriceUnit string

const (
	PricePerRoom PriceUnit = "perRoom"
	PricePerHour PriceUnit = "perHour"
	PriceFixed   PriceUnit = "fixed"
)

// Service is a purchasable cleaning offering. Values are immutable once fetched from the catalog
type Service struct {
	ID                       string
	Name                     string
	Description              string
	Category                 ServiceCategory
	BasePrice                decimal.Decimal
	PriceUnit                PriceUnit
	EstimatedDurationMinutes int
	MinimumRooms             int
	IncludedTasks            []string
	ImageURL                 string
	IsAvailable              bool
	IsPopular                bool
}

// PriceLabel returns the display form of the price, e.g. "$50.00 per room"
func (s *Service) PriceLabel() string {
	price := "$" + s.BasePrice.StringFixed(2)
	switch s.PriceUnit {
	case PricePerRoom:
		return price + " per room"
	case PricePerHour:
		return price + " per hour"
	default:
		return price
	}
}
