package domain

import "time"

// UserProfile mirrors the profile document of an authenticated user
type UserProfile struct {
	ID              string
	Email           string
	FullName        string
	PhoneNumber     string
	ProfileImageURL *string
	// Addresses хранятся в порядке добавления, не более одного адреса по умолчанию
	Addresses                []Address
	PreferredPaymentMethodID *string
	StripeCustomerID         *string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// DefaultAddress returns the address marked as default
func (p *UserProfile) DefaultAddress() (Address, bool) {
	for _, a := range p.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return Address{}, false
}

// AddressByID finds an address of the profile
func (p *UserProfile) AddressByID(id string) (Address, bool) {
	for _, a := range p.Addresses {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// Session is an authenticated identity issued by the auth provider
type Session struct {
	UserID       string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}
