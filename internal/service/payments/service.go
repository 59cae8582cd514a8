package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/service/payments/models"
	"github.com/vgcman16/CleanMate/pkg/ptr"
)

// Service сохраненные способы оплаты пользователя
type Service struct {
	provider PaymentProvider
	profiles ProfileService
	logger   Logger
}

// NewService создает новый экземпляр сервиса способов оплаты
func NewService(provider PaymentProvider, profiles ProfileService, logger Logger) *Service {
	return &Service{
		provider: provider,
		profiles: profiles,
		logger:   logger,
	}
}

// ListSavedMethods возвращает карты клиента у провайдера.
// Способ по умолчанию берется из профиля
func (s *Service) ListSavedMethods(ctx context.Context, userID string) (*models.PaymentMethodListResponse, error) {
	s.logger.Info("ListSavedMethods: user=%s", userID)

	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Клиент у провайдера создается при первом сохранении способа оплаты
	if p.StripeCustomerID == nil {
		return models.FromDomainMethodList(nil), nil
	}

	methods, err := s.provider.ListCardMethods(ctx, *p.StripeCustomerID)
	if err != nil {
		s.logger.Error("ListSavedMethods: provider error for user=%s: %v", userID, err)
		return nil, s.providerError("ListSavedMethods", err)
	}

	preferred := ptr.Deref(p.PreferredPaymentMethodID)
	for i := range methods {
		methods[i].IsDefault = methods[i].ID == preferred
	}

	s.logger.Info("ListSavedMethods: %d methods for user=%s", len(methods), userID)
	return models.FromDomainMethodList(methods), nil
}

// AddMethod привязывает способ оплаты к клиенту провайдера.
// Первый способ оплаты становится способом по умолчанию
func (s *Service) AddMethod(ctx context.Context, userID string, req *models.AddMethodRequest) (*models.PaymentMethodResponse, error) {
	s.logger.Info("AddMethod: user=%s method=%s", userID, req.PaymentMethodID)

	if strings.TrimSpace(req.PaymentMethodID) == "" {
		return nil, fmt.Errorf("%w: paymentMethodId is required", ErrInvalidInput)
	}

	p, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	customerID, err := s.ensureCustomer(ctx, p)
	if err != nil {
		return nil, err
	}

	method, err := s.provider.AttachMethod(ctx, req.PaymentMethodID, customerID)
	if err != nil {
		s.logger.Error("AddMethod: attach failed for user=%s: %v", userID, err)
		return nil, s.providerError("AddMethod", err)
	}

	if req.MakeDefault || p.PreferredPaymentMethodID == nil {
		if err := s.profiles.SetPreferredPaymentMethod(ctx, userID, method.ID); err != nil {
			return nil, err
		}
		method.IsDefault = true
	}

	s.logger.Info("AddMethod: method=%s attached for user=%s", method.ID, userID)
	resp := models.FromDomainMethod(*method)
	return &resp, nil
}

func (s *Service) ensureCustomer(ctx context.Context, p *domain.UserProfile) (string, error) {
	if p.StripeCustomerID != nil {
		return *p.StripeCustomerID, nil
	}

	customerID, err := s.provider.CreateCustomer(ctx, p.ID, p.Email, p.FullName)
	if err != nil {
		s.logger.Error("ensureCustomer: failed for user=%s: %v", p.ID, err)
		return "", s.providerError("ensureCustomer", err)
	}

	if err := s.profiles.SetStripeCustomerID(ctx, p.ID, customerID); err != nil {
		return "", err
	}

	s.logger.Info("ensureCustomer: customer=%s created for user=%s", customerID, p.ID)
	return customerID, nil
}

// providerError сохраняет вид ошибки провайдера, иначе считает ее внешней
func (s *Service) providerError(op string, err error) error {
	for _, kind := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrExternalService} {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrProviderFailure, op, err)
}
