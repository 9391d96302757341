package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lapstorecommerce/laptop-store-backend/internal/coupon"
	"github.com/lapstorecommerce/laptop-store-backend/internal/payment"
	"github.com/lapstorecommerce/laptop-store-backend/internal/product"
)

// stubGateway hands out deterministic order ids and records the last request.
type stubGateway struct {
	lastAmount  int64
	lastReceipt string
	nextID      string
	fail        bool
}

func (g *stubGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string) (payment.GatewayOrder, error) {
	if g.fail {
		return payment.GatewayOrder{}, payment.ErrGatewayUnavailable
	}
	g.lastAmount = amountMinor
	g.lastReceipt = receipt
	id := g.nextID
	if id == "" {
		id = "order_stub1"
	}
	return payment.GatewayOrder{ID: id, Amount: amountMinor, Currency: currency, Status: "created"}, nil
}

func laptopA() product.Product {
	return product.Product{
		ID:         1,
		Title:      "ProBook 450",
		FinalPrice: 50000,
		Image:      "/img/probook.jpg",
		ConfigOptions: product.ConfigOptions{
			RAM: []product.ConfigOption{
				{Label: "8GB RAM", Value: "8GB", Price: 0},
				{Label: "16GB RAM", Value: "16GB", Price: 4000},
			},
			Storage: []product.ConfigOption{
				{Label: "256GB SSD", Value: "256GB", Price: 0},
			},
			Warranty: []product.ConfigOption{
				{Label: "1 Year Warranty", Value: "1 Year", Price: 0},
			},
		},
	}
}

func newTestService(t *testing.T, coupons []coupon.Coupon) (*Service, *stubGateway, *coupon.Service) {
	t.Helper()
	products := product.NewService(product.NewInMemoryRepository([]product.Product{laptopA()}))
	couponService := coupon.NewService(coupon.NewInMemoryRepository(coupons))
	gw := &stubGateway{}
	s := NewService(NewInMemoryRepository(), products, couponService, gw, "key_test", "secret")
	return s, gw, couponService
}

func cartWithRAMUpgrade() []CheckoutItem {
	return []CheckoutItem{
		{ProductID: 1, Quantity: 1, Config: SelectedConfig{RAM: "16GB"}},
	}
}

func TestCheckout_TotalsWithConfigSurcharge(t *testing.T) {
	s, gw, _ := newTestService(t, nil)

	res, err := s.Checkout(context.Background(), CheckoutInput{
		UserID:        7,
		CustomerName:  "Asha",
		Items:         cartWithRAMUpgrade(),
		PaymentMethod: "razorpay",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if res.Order.Total != 54000 {
		t.Errorf("expected total 54000, got %d", res.Order.Total)
	}
	if res.Amount != 5400000 {
		t.Errorf("expected minor-unit amount 5400000, got %d", res.Amount)
	}
	if gw.lastAmount != 5400000 {
		t.Errorf("gateway saw amount %d", gw.lastAmount)
	}
	if res.Order.Status != StatusPending || res.Order.PaymentStatus != PaymentPending {
		t.Errorf("new order should be (Pending, Pending), got (%s, %s)", res.Order.Status, res.Order.PaymentStatus)
	}
	if res.Order.GatewayOrderID == "" || res.Order.GatewayOrderID != res.GatewayOrderID {
		t.Errorf("gateway order id not recorded: %+v", res)
	}
	if len(res.Order.Items) != 1 || res.Order.Items[0].FinalPrice != 54000 {
		t.Errorf("line snapshot wrong: %+v", res.Order.Items)
	}
}

func TestCheckout_UnmatchedConfigAddsNothing(t *testing.T) {
	s, _, _ := newTestService(t, nil)

	res, err := s.Checkout(context.Background(), CheckoutInput{
		UserID: 7,
		Items: []CheckoutItem{
			{ProductID: 1, Quantity: 2, Config: SelectedConfig{RAM: "64GB", Storage: "8TB"}},
		},
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if res.Order.Total != 100000 {
		t.Errorf("expected total 100000, got %d", res.Order.Total)
	}
}

func validCoupon(code, typ string, value int64) coupon.Coupon {
	return coupon.Coupon{
		Code:       code,
		Type:       typ,
		Value:      value,
		ExpiryDate: time.Now().Add(24 * time.Hour),
		UsageLimit: 100,
		IsActive:   true,
	}
}

func TestCheckout_FixedCouponSubtracted(t *testing.T) {
	s, gw, _ := newTestService(t, []coupon.Coupon{validCoupon("SAVE5K", coupon.TypeFixed, 5000)})

	res, err := s.Checkout(context.Background(), CheckoutInput{
		UserID:     7,
		Items:      cartWithRAMUpgrade(),
		CouponCode: "save5k",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if res.Order.Total != 49000 {
		t.Errorf("expected total 49000, got %d", res.Order.Total)
	}
	if res.Order.Coupon != "SAVE5K" || res.Order.CouponValue != 5000 {
		t.Errorf("coupon snapshot wrong: code=%q value=%d", res.Order.Coupon, res.Order.CouponValue)
	}
	if gw.lastAmount != 4900000 {
		t.Errorf("gateway saw amount %d", gw.lastAmount)
	}
}

func TestCheckout_OversizedCouponFloorsAtZero(t *testing.T) {
	s, _, _ := newTestService(t, []coupon.Coupon{validCoupon("MEGA", coupon.TypeFixed, 60000)})

	res, err := s.Checkout(context.Background(), CheckoutInput{
		UserID:     7,
		Items:      cartWithRAMUpgrade(),
		CouponCode: "MEGA",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if res.Order.Total != 0 {
		t.Errorf("expected total 0, got %d", res.Order.Total)
	}
	if res.Order.CouponValue != 54000 {
		t.Errorf("discount should be capped at cart total, got %d", res.Order.CouponValue)
	}
}

func TestCheckout_PercentageCoupon(t *testing.T) {
	s, _, _ := newTestService(t, []coupon.Coupon{validCoupon("TEN", coupon.TypePercentage, 10)})

	res, err := s.Checkout(context.Background(), CheckoutInput{
		UserID:     7,
		Items:      cartWithRAMUpgrade(),
		CouponCode: "TEN",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if res.Order.Total != 48600 {
		t.Errorf("expected total 48600, got %d", res.Order.Total)
	}
}

func TestCheckout_CouponUsageIncremented(t *testing.T) {
	s, _, coupons := newTestService(t, []coupon.Coupon{validCoupon("ONCE", coupon.TypeFixed, 1000)})

	if _, err := s.Checkout(context.Background(), CheckoutInput{
		UserID:     7,
		Items:      cartWithRAMUpgrade(),
		CouponCode: "ONCE",
	}); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	cp, err := coupons.GetByCode("ONCE")
	if err != nil {
		t.Fatal(err)
	}
	if cp.UsedCount != 1 {
		t.Errorf("expected usedCount 1, got %d", cp.UsedCount)
	}
}

func TestCheckout_UnknownCouponFails(t *testing.T) {
	s, _, _ := newTestService(t, nil)

	_, err := s.Checkout(context.Background(), CheckoutInput{
		UserID:     7,
		Items:      cartWithRAMUpgrade(),
		CouponCode: "NOPE",
	})
	if !errors.Is(err, coupon.ErrNotFound) {
		t.Fatalf("expected coupon.ErrNotFound, got %v", err)
	}
}

func TestCheckout_ExpiredCouponFails(t *testing.T) {
	expired := validCoupon("OLD", coupon.TypeFixed, 1000)
	expired.ExpiryDate = time.Now().Add(-time.Hour)
	s, _, _ := newTestService(t, []coupon.Coupon{expired})

	_, err := s.Checkout(context.Background(), CheckoutInput{
		UserID:     7,
		Items:      cartWithRAMUpgrade(),
		CouponCode: "OLD",
	})
	if !errors.Is(err, coupon.ErrExpired) {
		t.Fatalf("expected coupon.ErrExpired, got %v", err)
	}
}

func TestCheckout_NoKnownProducts(t *testing.T) {
	s, _, _ := newTestService(t, nil)

	_, err := s.Checkout(context.Background(), CheckoutInput{
		UserID: 7,
		Items:  []CheckoutItem{{ProductID: 99, Quantity: 1}},
	})
	if !errors.Is(err, ErrProductsNotFound) {
		t.Fatalf("expected ErrProductsNotFound, got %v", err)
	}
}

func TestCheckout_PartialUnknownProductIsFatal(t *testing.T) {
	s, _, _ := newTestService(t, nil)

	_, err := s.Checkout(context.Background(), CheckoutInput{
		UserID: 7,
		Items: []CheckoutItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
	})
	if err == nil || errors.Is(err, ErrProductsNotFound) {
		t.Fatalf("expected a per-line fatal error, got %v", err)
	}
}

func TestCheckout_GatewayFailureNothingPersisted(t *testing.T) {
	s, gw, _ := newTestService(t, nil)
	gw.fail = true

	_, err := s.Checkout(context.Background(), CheckoutInput{
		UserID: 7,
		Items:  cartWithRAMUpgrade(),
	})
	if !errors.Is(err, payment.ErrGatewayUnavailable) {
		t.Fatalf("expected gateway error, got %v", err)
	}

	orders, _ := s.ListAll()
	if len(orders) != 0 {
		t.Errorf("no order should be persisted after gateway failure, got %d", len(orders))
	}
}

func placeOrder(t *testing.T, s *Service) Order {
	t.Helper()
	res, err := s.Checkout(context.Background(), CheckoutInput{
		UserID: 7,
		Items:  cartWithRAMUpgrade(),
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return res.Order
}

func TestVerifyPayment_Success(t *testing.T) {
	s, _, _ := newTestService(t, nil)
	ord := placeOrder(t, s)

	sig := payment.Sign(ord.GatewayOrderID, "pay_1", "secret")
	updated, err := s.VerifyPayment(ord.GatewayOrderID, "pay_1", sig)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if updated.Status != StatusProcessing || updated.PaymentStatus != PaymentPaid {
		t.Errorf("expected (Processing, Paid), got (%s, %s)", updated.Status, updated.PaymentStatus)
	}
	if updated.GatewayPaymentID != "pay_1" || updated.GatewaySignature != sig || updated.PaidAt == nil {
		t.Errorf("payment fields not recorded: %+v", updated)
	}
}

func TestVerifyPayment_WrongOrderSignatureRejected(t *testing.T) {
	s, _, _ := newTestService(t, nil)
	ord := placeOrder(t, s)

	// signature computed over a different order id
	sig := payment.Sign("order_other", "pay_1", "secret")
	_, err := s.VerifyPayment(ord.GatewayOrderID, "pay_1", sig)
	if !errors.Is(err, payment.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	stored, _ := s.GetByID(ord.ID)
	if stored.Status != StatusPending || stored.PaymentStatus != PaymentPending {
		t.Errorf("order mutated by failed verification: (%s, %s)", stored.Status, stored.PaymentStatus)
	}
	if stored.GatewayPaymentID != "" || stored.PaidAt != nil {
		t.Errorf("payment fields written on failed verification: %+v", stored)
	}
}

func TestUpdateStatus_Permissive(t *testing.T) {
	s, _, _ := newTestService(t, nil)
	ord := placeOrder(t, s)

	// Delivered straight from Pending is allowed
	updated, err := s.UpdateStatus(ord.GatewayOrderID, StatusDelivered)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != StatusDelivered {
		t.Errorf("expected Delivered, got %s", updated.Status)
	}
}

func TestUpdateStatus_RejectsUnknownAndPending(t *testing.T) {
	s, _, _ := newTestService(t, nil)
	ord := placeOrder(t, s)

	for _, status := range []Status{StatusPending, Status("Lost")} {
		if _, err := s.UpdateStatus(ord.GatewayOrderID, status); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("status %q: expected ErrInvalidStatus, got %v", status, err)
		}
	}
}

func TestCancel_Idempotent(t *testing.T) {
	s, _, _ := newTestService(t, nil)
	ord := placeOrder(t, s)

	first, err := s.Cancel(ord.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if first.Status != StatusCancelled || first.PaymentStatus != PaymentFailed {
		t.Errorf("expected (Cancelled, Failed), got (%s, %s)", first.Status, first.PaymentStatus)
	}

	second, err := s.Cancel(ord.ID)
	if err != nil {
		t.Fatalf("second cancel failed: %v", err)
	}
	if second.Status != StatusCancelled || second.PaymentStatus != PaymentFailed {
		t.Errorf("cancel not idempotent: (%s, %s)", second.Status, second.PaymentStatus)
	}
}
