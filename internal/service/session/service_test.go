package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/infra/docstore/profile"
	"github.com/vgcman16/CleanMate/internal/integrations/firebaseauth"
	"github.com/vgcman16/CleanMate/internal/service/session/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
)

type fakeAuth struct {
	users      map[string]string // email -> password
	uids       map[string]string // email -> uid
	signUpErr  error
	revoked    []string
	resetSent  []string
	validToken map[string]string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		users:      make(map[string]string),
		uids:       make(map[string]string),
		validToken: make(map[string]string),
	}
}

func (a *fakeAuth) SignUp(_ context.Context, email, password, _, _ string) (string, error) {
	if a.signUpErr != nil {
		return "", a.signUpErr
	}
	if _, ok := a.users[email]; ok {
		return "", firebaseauth.ErrEmailAlreadyInUse
	}
	uid := "uid-" + email
	a.users[email] = password
	a.uids[email] = uid
	return uid, nil
}

func (a *fakeAuth) SignIn(_ context.Context, email, password string) (*domain.Session, error) {
	if pw, ok := a.users[email]; !ok || pw != password {
		return nil, firebaseauth.ErrInvalidCredentials
	}
	token := "token-" + a.uids[email]
	a.validToken[token] = a.uids[email]
	return &domain.Session{UserID: a.uids[email], Email: email, IDToken: token, RefreshToken: "refresh"}, nil
}

func (a *fakeAuth) ResetPassword(_ context.Context, email string) error {
	if _, ok := a.users[email]; !ok {
		return firebaseauth.ErrUserNotFound
	}
	a.resetSent = append(a.resetSent, email)
	return nil
}

func (a *fakeAuth) SignOut(_ context.Context, uid string) error {
	a.revoked = append(a.revoked, uid)
	return nil
}

func (a *fakeAuth) VerifyIDToken(_ context.Context, idToken string) (string, error) {
	uid, ok := a.validToken[idToken]
	if !ok {
		return "", firebaseauth.ErrInvalidToken
	}
	return uid, nil
}

type fakeProfiles struct {
	mu        sync.Mutex
	profiles  map[string]*domain.UserProfile
	getCalls  int
	updateErr error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[string]*domain.UserProfile)}
}

func (f *fakeProfiles) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	p, ok := f.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (f *fakeProfiles) Create(_ context.Context, p *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.ID] = cloneProfile(p)
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, userID string, patch profile.Patch, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	if patch.Addresses != nil {
		p.Addresses = append([]domain.Address(nil), patch.Addresses...)
	}
	if patch.PreferredPaymentMethodID != nil {
		p.PreferredPaymentMethodID = patch.PreferredPaymentMethodID
	}
	if patch.StripeCustomerID != nil {
		p.StripeCustomerID = patch.StripeCustomerID
	}
	p.UpdatedAt = now
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService() (*Service, *fakeAuth, *fakeProfiles) {
	auth := newFakeAuth()
	profiles := newFakeProfiles()
	svc := NewService(auth, profiles, logger.NewNop())
	svc.timeProvider = fixedClock{now: time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)}
	return svc, auth, profiles
}

func validSignUp() *models.SignUpRequest {
	return &models.SignUpRequest{
		Email:       "jane@example.com",
		Password:    "secret1",
		FullName:    "Jane Doe",
		PhoneNumber: "+15125550100",
	}
}

func TestService_SignUp(t *testing.T) {
	svc, _, profiles := newTestService()

	var changes []Change
	svc.Subscribe(func(c Change) { changes = append(changes, c) })

	sess, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	assert.Equal(t, "uid-jane@example.com", sess.UserID)
	assert.NotEmpty(t, sess.IDToken)

	stored := profiles.profiles[sess.UserID]
	require.NotNil(t, stored)
	assert.Equal(t, "Jane Doe", stored.FullName)
	assert.Equal(t, "+15125550100", stored.PhoneNumber)

	require.Len(t, changes, 1)
	assert.Equal(t, ChangeSignedIn, changes[0].Type)
	assert.Equal(t, "Jane Doe", changes[0].Profile.FullName)
}

func TestService_SignUp_Validation(t *testing.T) {
	cases := map[string]struct {
		mutate func(r *models.SignUpRequest)
		want   error
	}{
		"empty name":     {func(r *models.SignUpRequest) { r.FullName = "  " }, ErrNameRequired},
		"bad email":      {func(r *models.SignUpRequest) { r.Email = "jane@" }, ErrInvalidEmail},
		"bad phone":      {func(r *models.SignUpRequest) { r.PhoneNumber = "0123" }, ErrInvalidPhone},
		"letters phone":  {func(r *models.SignUpRequest) { r.PhoneNumber = "+1512abc" }, ErrInvalidPhone},
		"short password": {func(r *models.SignUpRequest) { r.Password = "12345" }, ErrWeakPassword},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _, profiles := newTestService()
			req := validSignUp()
			tc.mutate(req)

			_, err := svc.SignUp(context.Background(), req)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, profiles.profiles)
		})
	}
}

func TestService_SignUp_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), validSignUp())
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Contains(t, err.Error(), "An account with this email already exists.")
}

func TestService_ProfileMirrorIsBounded(t *testing.T) {
	svc, _, profiles := newTestService()
	svc.mirror = expirable.NewLRU[string, *domain.UserProfile](2, nil, time.Hour)
	for _, id := range []string{"u1", "u2", "u3"} {
		require.NoError(t, profiles.Create(context.Background(), &domain.UserProfile{ID: id, FullName: id}))
	}

	for _, id := range []string{"u1", "u2", "u3"} {
		_, err := svc.Profile(context.Background(), id)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, svc.mirror.Len())
	assert.Equal(t, 3, profiles.getCalls)

	// u1 вытеснен самым старым и загружается заново
	_, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, profiles.getCalls)

	_, err = svc.Profile(context.Background(), "u3")
	require.NoError(t, err)
	assert.Equal(t, 4, profiles.getCalls)
}

func TestService_ProfileMirrorExpires(t *testing.T) {
	svc, _, profiles := newTestService()
	svc.mirror = expirable.NewLRU[string, *domain.UserProfile](10, nil, 20*time.Millisecond)
	require.NoError(t, profiles.Create(context.Background(), &domain.UserProfile{ID: "u1", FullName: "u1"}))

	_, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)
	_, err = svc.Profile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, profiles.getCalls)

	assert.Eventually(t, func() bool {
		_, err := svc.Profile(context.Background(), "u1")
		return err == nil && profiles.getCalls > 1
	}, time.Second, 10*time.Millisecond)
}

func TestService_SignIn_SignOut(t *testing.T) {
	svc, auth, profiles := newTestService()
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)
	require.NoError(t, svc.SignOut(context.Background(), "uid-jane@example.com"))

	_, err = svc.SignIn(context.Background(), &models.SignInRequest{Email: "jane@example.com", Password: "wrong!"})
	assert.ErrorIs(t, err, firebaseauth.ErrInvalidCredentials)

	sess, err := svc.SignIn(context.Background(), &models.SignInRequest{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)

	uid, err := svc.Authenticate(context.Background(), sess.IDToken)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, uid)

	calls := profiles.getCalls
	p, err := svc.GetProfile(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.FullName)
	assert.Equal(t, calls, profiles.getCalls, "profile is served from the mirror")

	var changes []Change
	svc.Subscribe(func(c Change) { changes = append(changes, c) })
	require.NoError(t, svc.SignOut(context.Background(), uid))
	assert.Contains(t, auth.revoked, uid)
	require.Len(t, changes, 1)
	assert.Equal(t, ChangeSignedOut, changes[0].Type)
	assert.Nil(t, changes[0].Profile)
}

func TestService_SignIn_CreatesMissingProfile(t *testing.T) {
	svc, auth, profiles := newTestService()
	auth.users["ext@example.com"] = "secret1"
	auth.uids["ext@example.com"] = "uid-ext"

	_, err := svc.SignIn(context.Background(), &models.SignInRequest{Email: "ext@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.Contains(t, profiles.profiles, "uid-ext")
	assert.Equal(t, "ext@example.com", profiles.profiles["uid-ext"].Email)
}

func TestService_Authenticate_Errors(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = svc.Authenticate(context.Background(), "forged")
	assert.ErrorIs(t, err, domain.ErrAuth)
}

func TestService_ResetPassword(t *testing.T) {
	svc, auth, _ := newTestService()
	_, err := svc.SignUp(context.Background(), validSignUp())
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), &models.ResetPasswordRequest{Email: "jane@example.com"}))
	assert.Equal(t, []string{"jane@example.com"}, auth.resetSent)

	err = svc.ResetPassword(context.Background(), &models.ResetPasswordRequest{Email: "nope"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestService_Addresses(t *testing.T) {
	svc, _, profiles := newTestService()
	ctx := context.Background()
	sess, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	uid := sess.UserID

	first, err := svc.AddAddress(ctx, uid, &models.AddAddressRequest{Street: "1 Main St", City: "Austin", State: "TX", ZipCode: "78701"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first address becomes default")
	assert.NotEmpty(t, first.ID)

	second, err := svc.AddAddress(ctx, uid, &models.AddAddressRequest{Street: "2 Oak Ave", City: "Austin", State: "TX", ZipCode: "78702"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	third, err := svc.AddAddress(ctx, uid, &models.AddAddressRequest{Street: "3 Elm Rd", City: "Austin", State: "TX", ZipCode: "78703", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, third.IsDefault)

	stored := profiles.profiles[uid]
	require.Len(t, stored.Addresses, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID}, []string{stored.Addresses[0].ID, stored.Addresses[1].ID, stored.Addresses[2].ID})
	defaults := 0
	for _, a := range stored.Addresses {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)

	p, err := svc.SetDefaultAddress(ctx, uid, second.ID)
	require.NoError(t, err)
	assert.True(t, p.Addresses[1].IsDefault)
	assert.False(t, p.Addresses[2].IsDefault)

	got, err := svc.Address(ctx, uid, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "2 Oak Ave", got.Street)

	_, err = svc.Address(ctx, uid, "missing")
	assert.ErrorIs(t, err, ErrAddressNotFound)

	_, err = svc.SetDefaultAddress(ctx, uid, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddAddress(ctx, uid, &models.AddAddressRequest{Street: "x", City: "", State: "TX", ZipCode: "1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_PaymentPreferences(t *testing.T) {
	svc, _, profiles := newTestService()
	ctx := context.Background()
	sess, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	require.NoError(t, svc.SetStripeCustomerID(ctx, sess.UserID, "cus_123"))
	require.NoError(t, svc.SetPreferredPaymentMethod(ctx, sess.UserID, "pm_1"))

	p, err := svc.Profile(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "cus_123", *p.StripeCustomerID)
	assert.Equal(t, "pm_1", *p.PreferredPaymentMethodID)
	assert.Equal(t, "cus_123", *profiles.profiles[sess.UserID].StripeCustomerID)
}

func TestService_UpdateFailureKeepsMirror(t *testing.T) {
	svc, _, profiles := newTestService()
	ctx := context.Background()
	sess, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)

	profiles.updateErr = errors.New("write conflict")
	err = svc.SetPreferredPaymentMethod(ctx, sess.UserID, "pm_1")
	assert.ErrorIs(t, err, ErrInternal)

	p, err := svc.Profile(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Nil(t, p.PreferredPaymentMethodID)
}

func TestService_ProfileMirrorIsCopied(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	sess, err := svc.SignUp(ctx, validSignUp())
	require.NoError(t, err)
	_, err = svc.AddAddress(ctx, sess.UserID, &models.AddAddressRequest{Street: "1 Main St", City: "Austin", State: "TX", ZipCode: "78701"})
	require.NoError(t, err)

	p, err := svc.Profile(ctx, sess.UserID)
	require.NoError(t, err)
	p.Addresses[0].Street = "mutated"

	again, err := svc.Profile(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Equal(t, "1 Main St", again.Addresses[0].Street)
}
