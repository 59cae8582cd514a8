package profile

import (
	"errors"
	"fmt"

	"github.com/vgcman16/CleanMate/internal/domain"
)

var (
	// ErrProfileNotFound возвращается, когда документ профиля отсутствует
	ErrProfileNotFound = fmt.Errorf("%w: profile.store: profile not found", domain.ErrNotFound)

	ErrQuery  = errors.New("profile.store: failed to query profile")
	ErrInsert = errors.New("profile.store: failed to insert profile")
	ErrUpdate = errors.New("profile.store: failed to update profile")
)
