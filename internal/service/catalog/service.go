package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
	catalogStore "github.com/vgcman16/CleanMate/internal/infra/docstore/catalog"
	"github.com/vgcman16/CleanMate/internal/service/catalog/models"
	"github.com/vgcman16/CleanMate/pkg/retry"
)

const (
	listenMinBackoff = time.Second
	listenMaxBackoff = 30 * time.Second
)

// Service каталог услуг с локальным снимком, который обновляет фоновый слушатель
type Service struct {
	store       Store
	logger      Logger
	retryPolicy retry.Policy

	minBackoff time.Duration
	maxBackoff time.Duration

	mu          sync.RWMutex
	snapshot    []*domain.Service
	loaded      bool
	subscribers map[int]func([]*domain.Service)
	nextSubID   int
}

// NewService создает новый экземпляр сервиса каталога
func NewService(store Store, logger Logger) *Service {
	return &Service{
		store:       store,
		logger:      logger,
		retryPolicy: retry.DefaultPolicy,
		minBackoff:  listenMinBackoff,
		maxBackoff:  listenMaxBackoff,
		subscribers: make(map[int]func([]*domain.Service)),
	}
}

// List возвращает доступные услуги каталога: сначала популярные, затем по имени.
// Фильтры category и popularOnly необязательны
func (s *Service) List(ctx context.Context, category *string, popularOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: category=%v popularOnly=%t", category, popularOnly)

	services, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Service, 0, len(services))
	for _, svc := range services {
		if !svc.IsAvailable {
			continue
		}
		if category != nil && string(svc.Category) != *category {
			continue
		}
		if popularOnly && !svc.IsPopular {
			continue
		}
		filtered = append(filtered, svc)
	}

	s.logger.Info("List: returning %d services", len(filtered))
	return models.FromDomainServiceList(filtered), nil
}

// Get возвращает услугу по ID
func (s *Service) Get(ctx context.Context, id string) (*models.ServiceResponse, error) {
	svc, err := s.GetDomain(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(svc), nil
}

// GetDomain возвращает услугу по ID как domain модель.
// Используется сценариями бронирования
func (s *Service) GetDomain(ctx context.Context, id string) (*domain.Service, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: service id is required", ErrInvalidInput)
	}

	s.mu.RLock()
	for _, svc := range s.snapshot {
		if svc.ID == id {
			s.mu.RUnlock()
			cp := *svc
			return &cp, nil
		}
	}
	s.mu.RUnlock()

	var svc *domain.Service
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var err error
		svc, err = s.store.Get(ctx, id)
		if errors.Is(err, catalogStore.ErrServiceNotFound) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		if errors.Is(err, catalogStore.ErrServiceNotFound) {
			s.logger.Warn("GetDomain: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetDomain: store error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetDomain - store error: %v", ErrInternal, err)
	}

	return svc, nil
}

// Create добавляет услугу в каталог и обновляет снимок
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: adding service name=%s", req.Name)

	svc, err := req.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: basePrice: %v", ErrInvalidInput, err)
	}
	if err := validateService(svc); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	id, err := s.store.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: store error: %v", err)
		return nil, fmt.Errorf("%w: Create - store error: %v", ErrInternal, err)
	}
	svc.ID = id

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("Create: refresh after create failed: %v", err)
	}

	s.logger.Info("Create: service id=%s created", id)
	return models.FromDomainService(svc), nil
}

// Refresh перечитывает доступные услуги каталога и уведомляет подписчиков
func (s *Service) Refresh(ctx context.Context) error {
	var services []*domain.Service
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var err error
		services, err = s.store.Query(ctx, catalogStore.Query{AvailableOnly: true})
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: Refresh - store error: %v", ErrInternal, err)
	}

	sortServices(services)

	s.mu.Lock()
	s.snapshot = services
	s.loaded = true
	subscribers := make([]func([]*domain.Service), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(copyServices(services))
	}

	s.logger.Info("Refresh: catalog snapshot has %d services", len(services))
	return nil
}

// Subscribe регистрирует наблюдателя снимка каталога.
// Возвращает функцию отписки
func (s *Service) Subscribe(fn func([]*domain.Service)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// Listen держит поток изменений каталога и обновляет снимок на каждое изменение.
// Ошибки потока логируются, поток переоткрывается с нарастающей паузой.
// Возвращается после отмены ctx
func (s *Service) Listen(ctx context.Context) {
	backoff := s.minBackoff

	for {
		if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("Listen: initial refresh failed: %v", err)
		}

		err := s.store.Watch(ctx, func() {
			if err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("Listen: refresh failed: %v", err)
			}
		})
		if ctx.Err() != nil {
			s.logger.Info("Listen: stopped")
			return
		}
		if err == nil {
			backoff = s.minBackoff
		}
		s.logger.Warn("Listen: change stream closed: %v, restarting in %s", err, backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Listen: stopped")
			return
		case <-timer.C:
		}

		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

func (s *Service) all(ctx context.Context) ([]*domain.Service, error) {
	s.mu.RLock()
	if s.loaded {
		services := copyServices(s.snapshot)
		s.mu.RUnlock()
		return services, nil
	}
	s.mu.RUnlock()

	if err := s.Refresh(ctx); err != nil {
		s.logger.Error("List: %v", err)
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyServices(s.snapshot), nil
}

func validateService(svc *domain.Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	switch svc.Category {
	case domain.CategoryRegular, domain.CategoryDeep, domain.CategoryMove, domain.CategoryOffice, domain.CategorySpecial:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, svc.Category)
	}
	switch svc.PriceUnit {
	case domain.PricePerRoom, domain.PricePerHour, domain.PriceFixed:
	default:
		return fmt.Errorf("%w: unknown price unit %q", ErrInvalidInput, svc.PriceUnit)
	}
	if svc.BasePrice.IsNegative() {
		return fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}
	if svc.EstimatedDurationMinutes <= 0 {
		return fmt.Errorf("%w: estimatedDuration must be positive", ErrInvalidInput)
	}
	if svc.MinimumRooms < 0 {
		return fmt.Errorf("%w: minimumRooms must not be negative", ErrInvalidInput)
	}
	return nil
}

func sortServices(services []*domain.Service) {
	sort.SliceStable(services, func(i, j int) bool {
		if services[i].IsPopular != services[j].IsPopular {
			return services[i].IsPopular
		}
		return services[i].Name < services[j].Name
	})
}

func copyServices(services []*domain.Service) []*domain.Service {
	out := make([]*domain.Service, len(services))
	for i, svc := range services {
		cp := *svc
		out[i] = &cp
	}
	return out
}
