package models

import (
	"time"

	"github.com/vgcman16/CleanMate/internal/domain"
)

// Request модели

// SignUpRequest запрос на регистрацию
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
}

// SignInRequest запрос на вход
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest запрос на сброс пароля
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// AddAddressRequest запрос на добавление адреса
type AddAddressRequest struct {
	Street       string  `json:"street"`
	Unit         *string `json:"unit,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zipCode"`
	Country      string  `json:"country"`
	IsDefault    bool    `json:"isDefault"`
	Instructions *string `json:"instructions,omitempty"`
}

// Response модели

// SessionResponse выданная сессия
type SessionResponse struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// AddressResponse адрес профиля
type AddressResponse struct {
	domain.Address
	FullAddress string `json:"fullAddress"`
}

// ProfileResponse профиль пользователя
type ProfileResponse struct {
	ID                       string            `json:"id"`
	Email                    string            `json:"email"`
	FullName                 string            `json:"fullName"`
	PhoneNumber              string            `json:"phoneNumber"`
	ProfileImageURL          *string           `json:"profileImageUrl,omitempty"`
	Addresses                []AddressResponse `json:"addresses"`
	PreferredPaymentMethodID *string           `json:"preferredPaymentMethodId,omitempty"`
	CreatedAt                time.Time         `json:"createdAt"`
	UpdatedAt                time.Time         `json:"updatedAt"`
}

// Методы конвертации

// FromDomainSession конвертирует сессию в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		UserID:       s.UserID,
		Email:        s.Email,
		IDToken:      s.IDToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
	}
}

// FromDomainAddress конвертирует адрес в DTO
func FromDomainAddress(a domain.Address) AddressResponse {
	return AddressResponse{Address: a, FullAddress: a.FullAddress()}
}

// FromDomainProfile конвертирует профиль в DTO
func FromDomainProfile(p *domain.UserProfile) *ProfileResponse {
	if p == nil {
		return nil
	}

	addresses := make([]AddressResponse, 0, len(p.Addresses))
	for _, a := range p.Addresses {
		addresses = append(addresses, FromDomainAddress(a))
	}

	return &ProfileResponse{
		ID:                       p.ID,
		Email:                    p.Email,
		FullName:                 p.FullName,
		PhoneNumber:              p.PhoneNumber,
		ProfileImageURL:          p.ProfileImageURL,
		Addresses:                addresses,
		PreferredPaymentMethodID: p.PreferredPaymentMethodID,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
}
