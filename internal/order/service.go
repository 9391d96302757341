package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lapstorecommerce/laptop-store-backend/internal/coupon"
	"github.com/lapstorecommerce/laptop-store-backend/internal/payment"
	"github.com/lapstorecommerce/laptop-store-backend/internal/product"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrProductsNotFound = errors.New("products not found")
	ErrInvalidStatus    = errors.New("status not settable")
)

// CheckoutItem is one cart line as submitted by the storefront.
type CheckoutItem struct {
	ProductID int            `json:"productId"`
	Quantity  int            `json:"quantity"`
	Config    SelectedConfig `json:"config"`
}

// CheckoutInput carries everything the engine needs to price and place an order.
type CheckoutInput struct {
	UserID          int
	CustomerName    string
	CustomerEmail   string
	Items           []CheckoutItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	CouponCode      string
	MapLink         string
}

// CheckoutResult is returned to the storefront so it can open the payment UI.
type CheckoutResult struct {
	Order          Order  `json:"order"`
	GatewayOrderID string `json:"orderId"`
	Amount         int64  `json:"amount"`
	KeyID          string `json:"key"`
}

// Service is the pricing and order engine. It owns order pricing, gateway
// order creation, payment verification and status transitions.
type Service struct {
	repo          Repository
	products      product.ServiceInterface
	coupons       coupon.ServiceInterface
	gateway       payment.Gateway
	gatewayKeyID  string
	gatewaySecret string
	now           func() time.Time
}

func NewService(repo Repository, products product.ServiceInterface, coupons coupon.ServiceInterface,
	gateway payment.Gateway, gatewayKeyID, gatewaySecret string) *Service {
	return &Service{
		repo:          repo,
		products:      products,
		coupons:       coupons,
		gateway:       gateway,
		gatewayKeyID:  gatewayKeyID,
		gatewaySecret: gatewaySecret,
		now:           time.Now,
	}
}

// Checkout prices the cart from the live catalog, applies at most one coupon,
// creates the gateway order and persists the internal order as
// (Pending, Pending). The gateway call happens before persistence; if the
// insert fails the provider order is orphaned and only logged (no
// reconciliation job exists yet).
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	if len(in.Items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	ids := make([]int, 0, len(in.Items))
	seen := make(map[int]struct{}, len(in.Items))
	for _, item := range in.Items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.products.ListByIDs(ids)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(products) == 0 {
		return CheckoutResult{}, ErrProductsNotFound
	}
	byID := make(map[int]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Price each line from the catalog snapshot. A cart line whose product
	// was not returned by the batch fetch fails the whole request.
	var total int64
	items := make([]Item, 0, len(in.Items))
	for _, line := range in.Items {
		p, ok := byID[line.ProductID]
		if !ok {
			return CheckoutResult{}, fmt.Errorf("product %d not found", line.ProductID)
		}
		if line.Quantity <= 0 {
			return CheckoutResult{}, fmt.Errorf("invalid quantity for product %d", line.ProductID)
		}

		unit := p.FinalPrice
		for _, sel := range []struct{ axis, value string }{
			{"ram", line.Config.RAM},
			{"storage", line.Config.Storage},
			{"warranty", line.Config.Warranty},
		} {
			// unmatched values contribute no surcharge
			if opt, ok := p.ConfigOptions.FindOption(sel.axis, sel.value); ok {
				unit += opt.Price
			}
		}

		total += unit * int64(line.Quantity)
		items = append(items, Item{
			ProductID:      p.ID,
			Title:          p.Title,
			Quantity:       line.Quantity,
			FinalPrice:     unit,
			Image:          p.Image,
			SelectedConfig: line.Config,
		})
	}

	// Coupons go through the same validation and discount computation as the
	// standalone validate endpoint, so quoted and charged amounts agree.
	var couponCode string
	var discount int64
	if in.CouponCode != "" {
		cp, d, err := s.coupons.Validate(in.CouponCode, total)
		if err != nil {
			return CheckoutResult{}, err
		}
		couponCode = cp.Code
		discount = d
		total -= discount
		if total < 0 {
			total = 0
		}
	}

	receipt := fmt.Sprintf("order_%d", s.now().UnixMilli())
	amountMinor := total * 100
	gwOrder, err := s.gateway.CreateOrder(ctx, amountMinor, "INR", receipt)
	if err != nil {
		return CheckoutResult{}, err
	}

	now := s.now().UTC().Format(time.RFC3339)
	ord := Order{
		GatewayOrderID:  gwOrder.ID,
		UserID:          in.UserID,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		Date:            now,
		Total:           total,
		Coupon:          couponCode,
		CouponValue:     discount,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		PaymentMethod:   in.PaymentMethod,
		MapLink:         in.MapLink,
		ShippingAddress: in.ShippingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		log.Printf("[order][checkout] persist failed, gateway order %s orphaned: %v", gwOrder.ID, err)
		return CheckoutResult{}, err
	}

	if couponCode != "" {
		if err := s.coupons.MarkUsed(couponCode); err != nil {
			log.Printf("[order][checkout] could not increment usage for coupon %s: %v", couponCode, err)
		}
	}

	return CheckoutResult{
		Order:          created,
		GatewayOrderID: gwOrder.ID,
		Amount:         amountMinor,
		KeyID:          s.gatewayKeyID,
	}, nil
}

// VerifyPayment checks the gateway's confirmation signature and, only on
// success, transitions the order to (Processing, Paid). A bad signature
// leaves the order untouched.
func (s *Service) VerifyPayment(gatewayOrderID, paymentID, signature string) (Order, error) {
	if err := payment.VerifySignature(gatewayOrderID, paymentID, signature, s.gatewaySecret); err != nil {
		return Order{}, err
	}
	return s.repo.MarkPaid(gatewayOrderID, paymentID, signature, s.now())
}

// UpdateStatus applies an admin status change, keyed by gateway order id.
// Any settable target state is accepted from any current state.
func (s *Service) UpdateStatus(gatewayOrderID string, status Status) (Order, error) {
	if !status.AdminSettable() {
		return Order{}, ErrInvalidStatus
	}
	return s.repo.UpdateStatus(gatewayOrderID, status)
}

// Cancel marks the order (Cancelled, Failed) whatever its current state.
// Cancelling an already-cancelled order is a no-op with the same outcome.
func (s *Service) Cancel(id int) (Order, error) {
	return s.repo.Cancel(id)
}

func (s *Service) GetByID(id int) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListAll() ([]Order, error) {
	return s.repo.ListAll()
}
