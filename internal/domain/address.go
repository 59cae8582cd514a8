package domain

import "strings"

// Address is a service location owned by a user profile
type Address struct {
	ID           string  `json:"id"`
	Street       string  `json:"street"`
	Unit         *string `json:"unit,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	ZipCode      string  `json:"zipCode"`
	Country      string  `json:"country"`
	IsDefault    bool    `json:"isDefault"`
	Instructions *string `json:"instructions,omitempty"`
}

// FullAddress returns the single-line display form
func (a Address) FullAddress() string {
	street := a.Street
	if a.Unit != nil && *a.Unit != "" {
		street += " " + *a.Unit
	}

	parts := []string{street, a.City, strings.TrimSpace(a.State + " " + a.ZipCode)}
	if a.Country != "" {
		parts = append(parts, a.Country)
	}
	return strings.Join(parts, ", ")
}
