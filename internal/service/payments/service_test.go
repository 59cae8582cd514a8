package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgcman16/CleanMate/internal/domain"
	"github.com/vgcman16/CleanMate/internal/integrations/stripe"
	"github.com/vgcman16/CleanMate/internal/service/payments/models"
	"github.com/vgcman16/CleanMate/pkg/logger"
	"github.com/vgcman16/CleanMate/pkg/ptr"
)

type fakeProvider struct {
	customers map[string][]domain.SavedPaymentMethod
	created   []string
	attachErr error
	listErr   error
}

func (p *fakeProvider) CreateCustomer(_ context.Context, userID, _, _ string) (string, error) {
	id := "cus_" + userID
	p.created = append(p.created, id)
	if p.customers == nil {
		p.customers = make(map[string][]domain.SavedPaymentMethod)
	}
	p.customers[id] = nil
	return id, nil
}

func (p *fakeProvider) ListCardMethods(_ context.Context, customerID string) ([]domain.SavedPaymentMethod, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return append([]domain.SavedPaymentMethod(nil), p.customers[customerID]...), nil
}

func (p *fakeProvider) AttachMethod(_ context.Context, paymentMethodID, customerID string) (*domain.SavedPaymentMethod, error) {
	if p.attachErr != nil {
		return nil, p.attachErr
	}
	m := domain.SavedPaymentMethod{ID: paymentMethodID, Type: domain.MethodCard, Last4: "4242", Brand: ptr.Ptr("Visa")}
	p.customers[customerID] = append(p.customers[customerID], m)
	return &m, nil
}

type fakeProfiles struct {
	profile *domain.UserProfile
}

func (f *fakeProfiles) Profile(_ context.Context, userID string) (*domain.UserProfile, error) {
	if f.profile == nil || f.profile.ID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeProfiles) SetStripeCustomerID(_ context.Context, _ string, customerID string) error {
	f.profile.StripeCustomerID = ptr.Ptr(customerID)
	return nil
}

func (f *fakeProfiles) SetPreferredPaymentMethod(_ context.Context, _ string, paymentMethodID string) error {
	f.profile.PreferredPaymentMethodID = ptr.Ptr(paymentMethodID)
	return nil
}

func newTestService() (*Service, *fakeProvider, *fakeProfiles) {
	provider := &fakeProvider{}
	profiles := &fakeProfiles{profile: &domain.UserProfile{ID: "user-1", Email: "jane@example.com", FullName: "Jane Doe"}}
	return NewService(provider, profiles, logger.NewNop()), provider, profiles
}

func TestService_ListSavedMethods_NoCustomer(t *testing.T) {
	svc, provider, _ := newTestService()

	resp, err := svc.ListSavedMethods(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, resp.PaymentMethods)
	assert.NotNil(t, resp.PaymentMethods)
	assert.Empty(t, provider.created)
}

func TestService_AddMethod_CreatesCustomerOnce(t *testing.T) {
	svc, provider, profiles := newTestService()
	ctx := context.Background()

	first, err := svc.AddMethod(ctx, "user-1", &models.AddMethodRequest{PaymentMethodID: "pm_1"})
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first method becomes default")
	assert.Equal(t, "Visa •••• 4242", first.DisplayName)

	second, err := svc.AddMethod(ctx, "user-1", &models.AddMethodRequest{PaymentMethodID: "pm_2"})
	require.NoError(t, err)
	assert.False(t, second.IsDefault)

	assert.Equal(t, []string{"cus_user-1"}, provider.created)
	assert.Equal(t, "cus_user-1", *profiles.profile.StripeCustomerID)
	assert.Equal(t, "pm_1", *profiles.profile.PreferredPaymentMethodID)

	_, err = svc.AddMethod(ctx, "user-1", &models.AddMethodRequest{PaymentMethodID: "pm_3", MakeDefault: true})
	require.NoError(t, err)

	resp, err := svc.ListSavedMethods(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, resp.PaymentMethods, 3)
	assert.False(t, resp.PaymentMethods[0].IsDefault)
	assert.True(t, resp.PaymentMethods[2].IsDefault)
}

func TestService_AddMethod_Errors(t *testing.T) {
	svc, provider, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AddMethod(ctx, "user-1", &models.AddMethodRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	provider.attachErr = stripe.ErrRejected
	_, err = svc.AddMethod(ctx, "user-1", &models.AddMethodRequest{PaymentMethodID: "pm_bad"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	provider.attachErr = errors.New("socket closed")
	_, err = svc.AddMethod(ctx, "user-1", &models.AddMethodRequest{PaymentMethodID: "pm_1"})
	assert.ErrorIs(t, err, domain.ErrExternalService)

	_, err = svc.AddMethod(ctx, "user-2", &models.AddMethodRequest{PaymentMethodID: "pm_1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ListSavedMethods_ProviderDown(t *testing.T) {
	svc, provider, profiles := newTestService()
	profiles.profile.StripeCustomerID = ptr.Ptr("cus_1")
	provider.listErr = stripe.ErrUnavailable

	_, err := svc.ListSavedMethods(context.Background(), "user-1")
	assert.ErrorIs(t, err, domain.ErrExternalService)
}
