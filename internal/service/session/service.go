package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/infra/docstore/profile"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
	"github.com/vgcman16/CleanMate/pkg/ptr"
)

const (
	minPasswordLength = 6

	mirrorSize = 10000
	mirrorTTL  = 15 * time.Minute
)

var (
	emailRegexp = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// Service состояние сессий и зеркало профилей аутентифицированных пользователей.
// Зеркало ограничено по размеру и времени жизни записи
type Service struct {
	auth         AuthProvider
	profiles     ProfileStore
	timeProvider TimeProvider
	logger       Logger

	mirror *expirable.LRU[string, *domain.UserProfile]

	mu          sync.Mutex
	subscribers map[int]func(Change)
	nextSubID   int

	// updateMu сериализует read-modify-write профилей
	updateMu sync.Mutex
}

// NewService создает новый экземпляр сервиса сессий
func NewService(auth AuthProvider, profiles ProfileStore, logger Logger) *Service {
	return &Service{
		auth:         auth,
		profiles:     profiles,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		mirror:       expirable.NewLRU[string, *domain.UserProfile](mirrorSize, nil, mirrorTTL),
		subscribers:  make(map[int]func(Change)),
	}
}

// SignUp регистрирует пользователя, создает профиль и открывает сессию
func (s *Service) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.SessionResponse, error) {
	email := strings.TrimSpace(req.Email)
	s.logger.Info("SignUp: registering email=%s", email)

	if err := validateSignUp(req); err != nil {
		s.logger.Warn("SignUp: validation failed for email=%s: %v", email, err)
		return nil, err
	}

	uid, err := s.auth.SignUp(ctx, email, req.Password, strings.TrimSpace(req.FullName), req.PhoneNumber)
	if err != nil {
		s.logger.Warn("SignUp: auth provider rejected email=%s: %v", email, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	p := &domain.UserProfile{
		ID:          uid,
		Email:       email,
		FullName:    strings.TrimSpace(req.FullName),
		PhoneNumber: req.PhoneNumber,
		Addresses:   []domain.Address{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		s.logger.Error("SignUp: failed to create profile for user=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: SignUp - profile store error: %v", ErrInternal, err)
	}

	session, err := s.auth.SignIn(ctx, email, req.Password)
	if err != nil {
		s.logger.Error("SignUp: sign-in after registration failed for user=%s: %v", uid, err)
		return nil, err
	}

	s.remember(p)
	s.notify(Change{Type: ChangeSignedIn, UserID: uid, Profile: p})

	s.logger.Info("SignUp: user=%s registered", uid)
	return models.FromDomainSession(session), nil
}

// SignIn открывает сессию и загружает профиль в зеркало
func (s *Service) SignIn(ctx context.Context, req *models.SignInRequest) (*models.SessionResponse, error) {
	email := strings.TrimSpace(req.Email)
	s.logger.Info("SignIn: email=%s", email)

	if !emailRegexp.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	session, err := s.auth.SignIn(ctx, email, req.Password)
	if err != nil {
		s.logger.Warn("SignIn: failed for email=%s: %v", email, err)
		return nil, err
	}

	p, err := s.loadProfile(ctx, session.UserID)
	if errors.Is(err, ErrProfileNotFound) {
		// Пользователь создан вне приложения
		now := s.timeProvider.Now()
		p = &domain.UserProfile{ID: session.UserID, Email: session.Email, Addresses: []domain.Address{}, CreatedAt: now, UpdatedAt: now}
		err = s.profiles.Create(ctx, p)
	}
	if err != nil {
		s.logger.Error("SignIn: failed to load profile for user=%s: %v", session.UserID, err)
		return nil, fmt.Errorf("%w: SignIn - profile store error: %v", ErrInternal, err)
	}

	s.remember(p)
	s.notify(Change{Type: ChangeSignedIn, UserID: p.ID, Profile: p})

	s.logger.Info("SignIn: user=%s signed in", session.UserID)
	return models.FromDomainSession(session), nil
}

// SignOut отзывает токены пользователя и убирает профиль из зеркала
func (s *Service) SignOut(ctx context.Context, userID string) error {
	s.logger.Info("SignOut: user=%s", userID)

	if err := s.auth.SignOut(ctx, userID); err != nil {
		s.logger.Warn("SignOut: failed for user=%s: %v", userID, err)
		return err
	}

	s.mirror.Remove(userID)

	s.notify(Change{Type: ChangeSignedOut, UserID: userID})
	return nil
}

// ResetPassword отправляет письмо для сброса пароля
func (s *Service) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	email := strings.TrimSpace(req.Email)
	s.logger.Info("ResetPassword: email=%s", email)

	if !emailRegexp.MatchString(email) {
		return ErrInvalidEmail
	}

	if err := s.auth.ResetPassword(ctx, email); err != nil {
		s.logger.Warn("ResetPassword: failed for email=%s: %v", email, err)
		return err
	}
	return nil
}

// Authenticate проверяет ID токен и возвращает uid пользователя
func (s *Service) Authenticate(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", ErrMissingToken
	}
	return s.auth.VerifyIDToken(ctx, idToken)
}

// GetProfile возвращает профиль пользователя
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainProfile(p), nil
}

// Profile возвращает копию профиля из зеркала, при отсутствии загружает из хранилища
func (s *Service) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if p, ok := s.mirror.Get(userID); ok {
		return cloneProfile(p), nil
	}

	p, err := s.loadProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			s.logger.Warn("Profile: profile for user=%s not found", userID)
			return nil, err
		}
		s.logger.Error("Profile: store error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Profile - store error: %v", ErrInternal, err)
	}

	s.remember(p)
	return cloneProfile(p), nil
}

// Address возвращает адрес профиля по ID
func (s *Service) Address(ctx context.Context, userID, addressID string) (domain.Address, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return domain.Address{}, err
	}

	address, ok := p.AddressByID(addressID)
	if !ok {
		return domain.Address{}, ErrAddressNotFound
	}
	return address, nil
}

// AddAddress добавляет адрес. Первый адрес становится адресом по умолчанию,
// новый адрес по умолчанию снимает флаг с остальных
func (s *Service) AddAddress(ctx context.Context, userID string, req *models.AddAddressRequest) (*models.AddressResponse, error) {
	s.logger.Info("AddAddress: user=%s", userID)

	if err := validateAddress(req); err != nil {
		s.logger.Warn("AddAddress: validation failed for user=%s: %v", userID, err)
		return nil, err
	}

	var added domain.Address
	err := s.updateProfile(ctx, userID, func(p *domain.UserProfile) (profile.Patch, error) {
		added = domain.Address{
			ID:           uuid.NewString(),
			Street:       strings.TrimSpace(req.Street),
			Unit:         req.Unit,
			City:         strings.TrimSpace(req.City),
			State:        strings.TrimSpace(req.State),
			ZipCode:      strings.TrimSpace(req.ZipCode),
			Country:      strings.TrimSpace(req.Country),
			IsDefault:    req.IsDefault || len(p.Addresses) == 0,
			Instructions: req.Instructions,
		}

		addresses := make([]domain.Address, 0, len(p.Addresses)+1)
		for _, a := range p.Addresses {
			if added.IsDefault {
				a.IsDefault = false
			}
			addresses = append(addresses, a)
		}
		addresses = append(addresses, added)

		p.Addresses = addresses
		return profile.Patch{Addresses: addresses}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddAddress: address id=%s added for user=%s", added.ID, userID)
	resp := models.FromDomainAddress(added)
	return &resp, nil
}

// SetDefaultAddress делает адрес адресом по умолчанию
func (s *Service) SetDefaultAddress(ctx context.Context, userID, addressID string) (*models.ProfileResponse, error) {
	s.logger.Info("SetDefaultAddress: user=%s address=%s", userID, addressID)

	var updated *domain.UserProfile
	err := s.updateProfile(ctx, userID, func(p *domain.UserProfile) (profile.Patch, error) {
		if _, ok := p.AddressByID(addressID); !ok {
			return profile.Patch{}, ErrAddressNotFound
		}

		addresses := make([]domain.Address, len(p.Addresses))
		for i, a := range p.Addresses {
			a.IsDefault = a.ID == addressID
			addresses[i] = a
		}

		p.Addresses = addresses
		updated = p
		return profile.Patch{Addresses: addresses}, nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainProfile(updated), nil
}

// SetPreferredPaymentMethod сохраняет способ оплаты по умолчанию
func (s *Service) SetPreferredPaymentMethod(ctx context.Context, userID, paymentMethodID string) error {
	s.logger.Info("SetPreferredPaymentMethod: user=%s method=%s", userID, paymentMethodID)

	return s.updateProfile(ctx, userID, func(p *domain.UserProfile) (profile.Patch, error) {
		p.PreferredPaymentMethodID = ptr.Ptr(paymentMethodID)
		return profile.Patch{PreferredPaymentMethodID: ptr.Ptr(paymentMethodID)}, nil
	})
}

// SetStripeCustomerID сохраняет ID клиента платежного провайдера
func (s *Service) SetStripeCustomerID(ctx context.Context, userID, customerID string) error {
	s.logger.Info("SetStripeCustomerID: user=%s customer=%s", userID, customerID)

	return s.updateProfile(ctx, userID, func(p *domain.UserProfile) (profile.Patch, error) {
		p.StripeCustomerID = ptr.Ptr(customerID)
		return profile.Patch{StripeCustomerID: ptr.Ptr(customerID)}, nil
	})
}

// updateProfile применяет mutate к актуальной копии профиля, сохраняет патч,
// обновляет зеркало и уведомляет наблюдателей
func (s *Service) updateProfile(ctx context.Context, userID string, mutate func(p *domain.UserProfile) (profile.Patch, error)) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	p, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}

	patch, err := mutate(p)
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()
	if err := s.profiles.Update(ctx, userID, patch, now); err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		s.logger.Error("updateProfile: store error for user=%s: %v", userID, err)
		return fmt.Errorf("%w: updateProfile - store error: %v", ErrInternal, err)
	}
	p.UpdatedAt = now

	s.remember(p)
	s.notify(Change{Type: ChangeProfileUpdated, UserID: userID, Profile: p})
	return nil
}

func (s *Service) loadProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

func (s *Service) remember(p *domain.UserProfile) {
	s.mirror.Add(p.ID, cloneProfile(p))
}

func validateSignUp(req *models.SignUpRequest) error {
	if strings.TrimSpace(req.FullName) == "" {
		return ErrNameRequired
	}
	if !emailRegexp.MatchString(strings.TrimSpace(req.Email)) {
		return ErrInvalidEmail
	}
	if !phoneRegexp.MatchString(req.PhoneNumber) {
		return ErrInvalidPhone
	}
	if len(req.Password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

func validateAddress(req *models.AddAddressRequest) error {
	required := map[string]string{
		"street":  req.Street,
		"city":    req.City,
		"state":   req.State,
		"zipCode": req.ZipCode,
	}
	for _, field := range []string{"street", "city", "state", "zipCode"} {
		if strings.TrimSpace(required[field]) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
		}
	}
	return nil
}

func cloneProfile(p *domain.UserProfile) *domain.UserProfile {
	cp := *p
	cp.Addresses = append([]domain.Address(nil), p.Addresses...)
	if cp.Addresses == nil {
		cp.Addresses = []domain.Address{}
	}
	return &cp
}
