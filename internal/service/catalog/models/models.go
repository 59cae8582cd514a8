package models

import (
	"github.com/shopspring/decimal"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на добавление услуги в каталог
type CreateServiceRequest struct {
	ID                       string   `json:"id,omitempty"`
	Name                     string   `json:"name"`
	Description              string   `json:"description"`
	Category                 string   `json:"category"`
	BasePrice                string   `json:"basePrice"` // "50.00"
	PriceUnit                string   `json:"priceUnit"`
	EstimatedDurationMinutes int      `json:"estimatedDuration"`
	MinimumRooms             int      `json:"minimumRooms"`
	IncludedTasks            []string `json:"includedTasks"`
	ImageURL                 string   `json:"imageUrl"`
	IsAvailable              bool     `json:"isAvailable"`
	IsPopular                bool     `json:"isPopular"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateServiceRequest) ToDomain() (*domain.Service, error) {
	price, err := decimal.NewFromString(r.BasePrice)
	if err != nil {
		return nil, err
	}

	return &domain.Service{
		ID:                       r.ID,
		Name:                     r.Name,
		Description:              r.Description,
		Category:                 domain.ServiceCategory(r.Category),
		BasePrice:                price,
		PriceUnit:                domain.PriceUnit(r.PriceUnit),
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		MinimumRooms:             r.MinimumRooms,
		IncludedTasks:            r.IncludedTasks,
		ImageURL:                 r.ImageURL,
		IsAvailable:              r.IsAvailable,
		IsPopular:                r.IsPopular,
	}, nil
}

// Response модели

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Description              string   `json:"description"`
	Category                 string   `json:"category"`
	BasePrice                string   `json:"basePrice"`
	PriceUnit                string   `json:"priceUnit"`
	PriceLabel               string   `json:"priceLabel"`
	EstimatedDurationMinutes int      `json:"estimatedDuration"`
	MinimumRooms             int      `json:"minimumRooms"`
	IncludedTasks            []string `json:"includedTasks"`
	ImageURL                 string   `json:"imageUrl"`
	IsAvailable              bool     `json:"isAvailable"`
	IsPopular                bool     `json:"isPopular"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	tasks := s.IncludedTasks
	if tasks == nil {
		tasks = []string{}
	}

	return &ServiceResponse{
		ID:                       s.ID,
		Name:                     s.Name,
		Description:              s.Description,
		Category:                 string(s.Category),
		BasePrice:                s.BasePrice.StringFixed(2),
		PriceUnit:                string(s.PriceUnit),
		PriceLabel:               s.PriceLabel(),
		EstimatedDurationMinutes: s.EstimatedDurationMinutes,
		MinimumRooms:             s.MinimumRooms,
		IncludedTasks:            tasks,
		ImageURL:                 s.ImageURL,
		IsAvailable:              s.IsAvailable,
		IsPopular:                s.IsPopular,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if item := FromDomainService(s); item != nil {
			resp.Services = append(resp.Services, *item)
		}
	}
	return resp
}
