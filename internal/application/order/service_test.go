package order

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/lamiarosa/store-api/internal/domain"
	"github.com/lamiarosa/store-api/internal/infrastructure/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Put(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *mockOrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if orders, _ := args.Get(0).([]domain.Order); orders != nil {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, key)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(to, subject, htmlBody string, inline []mail.InlineImage) error {
	return m.Called(to, subject, htmlBody, inline).Error(0)
}

func newTestService(os *mockOrderStore, is *mockImageStore, ml *mockMailer) Service {
	return NewService(ServiceDeps{OrderRepo: os, Images: is, Mailer: ml, ShopEmail: "shop@lamiarosa.com"})
}

var testItems = []domain.OrderItem{
	{Title: "Side-Zip Turtleneck Sweater", Qty: 2, Price: 5.0},
}

// --- Create ---

func TestCreate_NoItems(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	_, err := svc.Create(context.Background(), "a@b.com", CreateOrderRequest{Total: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_HappyPath(t *testing.T) {
	os := &mockOrderStore{}
	var stored *domain.Order
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Order)
	}).Return(nil)

	svc := newTestService(os, nil, nil)
	orderID, err := svc.Create(context.Background(), "a@b.com", CreateOrderRequest{Items: testItems, Total: 10})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, orderID, stored.OrderID)
	assert.Len(t, stored.OrderID, 26) // ULID
	assert.Equal(t, "a@b.com", stored.UserID)
	assert.Equal(t, domain.OrderStatusPaid, stored.Status)
	assert.Equal(t, 10.0, stored.Total)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestCreate_StoreFailure(t *testing.T) {
	os := &mockOrderStore{}
	os.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := newTestService(os, nil, nil)
	_, err := svc.Create(context.Background(), "a@b.com", CreateOrderRequest{Items: testItems, Total: 10})
	require.Error(t, err)
}

// --- ListByUser ---

func TestListByUser(t *testing.T) {
	os := &mockOrderStore{}
	os.On("ListByUser", mock.Anything, "a@b.com").Return([]domain.Order{
		{OrderID: "2"}, {OrderID: "1"},
	}, nil)

	svc := newTestService(os, nil, nil)
	orders, err := svc.ListByUser(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "2", orders[0].OrderID)
}

// --- CreatePayment ---

func TestCreatePayment_EmptyCart(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	_, err := svc.CreatePayment(context.Background(), "", CreatePaymentRequest{Total: "10", Email: "a@b.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreatePayment_MissingEmail(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	_, err := svc.CreatePayment(context.Background(), "", CreatePaymentRequest{Cart: testItems, Total: "10"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreatePayment_ParsesDisplayTotal(t *testing.T) {
	os := &mockOrderStore{}
	ml := &mockMailer{}
	var stored *domain.Order
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Order)
	}).Return(nil)
	ml.On("Send", "a@b.com", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(os, nil, ml)
	_, err := svc.CreatePayment(context.Background(), "a@b.com", CreatePaymentRequest{
		Cart:  testItems,
		Total: "₺1,249.90",
		Email: "a@b.com",
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1249.90, stored.Total)
	assert.Equal(t, "a@b.com", stored.UserID)
}

func TestCreatePayment_GuestCheckout(t *testing.T) {
	os := &mockOrderStore{}
	ml := &mockMailer{}
	var stored *domain.Order
	os.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Order)
	}).Return(nil)
	ml.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(os, nil, ml)
	orderID, err := svc.CreatePayment(context.Background(), "", CreatePaymentRequest{
		Cart:  testItems,
		Total: "10",
		Email: "guest@b.com",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, orderID)
	assert.Empty(t, stored.UserID)
}

func TestCreatePayment_MailFailureIsNonFatal(t *testing.T) {
	os := &mockOrderStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.Anything).Return(nil)
	ml.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newTestService(os, nil, ml)
	orderID, err := svc.CreatePayment(context.Background(), "", CreatePaymentRequest{
		Cart:  testItems,
		Total: "10",
		Email: "a@b.com",
	})

	require.NoError(t, err, "checkout must succeed once the order row is written")
	assert.NotEmpty(t, orderID)
}

func TestCreatePayment_EmbedsProductImages(t *testing.T) {
	os := &mockOrderStore{}
	is := &mockImageStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.Anything).Return(nil)
	is.On("Download", mock.Anything, "sweater.jpg").
		Return(io.NopCloser(bytes.NewReader([]byte("jpeg-bytes"))), "image/jpeg", nil)

	var inline []mail.InlineImage
	ml.On("Send", "a@b.com", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inline, _ = args.Get(3).([]mail.InlineImage)
	}).Return(nil)

	cart := []domain.OrderItem{{Title: "Sweater", Qty: 1, Price: 10, Image: "sweater.jpg"}}
	svc := newTestService(os, is, ml)
	_, err := svc.CreatePayment(context.Background(), "", CreatePaymentRequest{
		Cart:  cart,
		Total: "10",
		Email: "a@b.com",
	})

	require.NoError(t, err)
	require.Len(t, inline, 1)
	assert.Equal(t, "product0.jpg", inline[0].Name)
	assert.Equal(t, []byte("jpeg-bytes"), inline[0].Content)

	html := ml.Calls[0].Arguments.String(2)
	assert.Contains(t, html, "cid:product0.jpg")
	assert.Contains(t, html, "Sweater")
}

func TestCreatePayment_MissingImageSkipsAttachment(t *testing.T) {
	os := &mockOrderStore{}
	is := &mockImageStore{}
	ml := &mockMailer{}
	os.On("Put", mock.Anything, mock.Anything).Return(nil)
	is.On("Download", mock.Anything, "gone.jpg").Return(nil, "", errors.New("no such key"))
	ml.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	cart := []domain.OrderItem{{Title: "Sweater", Qty: 1, Price: 10, Image: "gone.jpg"}}
	svc := newTestService(os, is, ml)
	_, err := svc.CreatePayment(context.Background(), "", CreatePaymentRequest{
		Cart:  cart,
		Total: "10",
		Email: "a@b.com",
	})

	require.NoError(t, err)
	inline, _ := ml.Calls[0].Arguments.Get(3).([]mail.InlineImage)
	assert.Empty(t, inline)
}

// --- parseDisplayTotal ---

func TestParseDisplayTotal(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"₺1249.90", 1249.90, false},
		{"₺1,249.90", 1249.90, false},
		{"10", 10, false},
		{" ₺ 99.50 ", 99.50, false},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		got, err := parseDisplayTotal(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

// --- SendTestEmail ---

func TestSendTestEmail(t *testing.T) {
	is := &mockImageStore{}
	ml := &mockMailer{}
	is.On("Download", mock.Anything, "black-zip-cardigan-1.jpg").
		Return(io.NopCloser(bytes.NewReader([]byte("img"))), "image/jpeg", nil)
	ml.On("Send", "shop@lamiarosa.com", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(nil, is, ml)
	require.NoError(t, svc.SendTestEmail(context.Background()))
	ml.AssertExpectations(t)
}
