package order

import "time"

// Status is the fulfilment axis of an order's lifecycle.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// PaymentStatus is tracked independently of the fulfilment status.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentFailed  PaymentStatus = "Failed"
)

// AdminSettable reports whether an admin status update may set s. Pending is
// only ever assigned at creation. Transitions between the settable states are
// deliberately unconstrained; a cancelled order can still be moved.
func (s Status) AdminSettable() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// SelectedConfig is the hardware configuration chosen for one cart line.
type SelectedConfig struct {
	RAM      string `json:"ram"`
	Storage  string `json:"storage"`
	Warranty string `json:"warranty"`
}

// Item is a line-item snapshot taken at order time. FinalPrice is the unit
// price including configuration surcharges; catalog edits after checkout do
// not touch it.
type Item struct {
	ProductID      int            `json:"productId"`
	Title          string         `json:"title"`
	Quantity       int            `json:"quantity"`
	FinalPrice     int64          `json:"finalPrice"`
	Image          string         `json:"image"`
	SelectedConfig SelectedConfig `json:"selectedConfig"`
}

// ShippingAddress is denormalized onto the order; it is a copy, not a
// reference into the customer's address book.
type ShippingAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Phone  string `json:"phone"`
	Type   string `json:"type"`
}

// Order is the durable order record. GatewayOrderID is assigned exactly once
// at creation. GatewayPaymentID, GatewaySignature and PaidAt are written only
// by a successful payment verification.
type Order struct {
	ID               int             `json:"id"`
	GatewayOrderID   string          `json:"orderId"`
	UserID           int             `json:"userId,omitempty"`
	CustomerName     string          `json:"customerName"`
	CustomerEmail    string          `json:"customerEmail,omitempty"`
	Date             string          `json:"date"`
	Total            int64           `json:"total"`
	Coupon           string          `json:"coupon,omitempty"`
	CouponValue      int64           `json:"couponValue"`
	Status           Status          `json:"status"`
	PaymentStatus    PaymentStatus   `json:"paymentStatus"`
	PaymentMethod    string          `json:"paymentMethod"`
	GatewayPaymentID string          `json:"paymentId,omitempty"`
	GatewaySignature string          `json:"signature,omitempty"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	MapLink          string          `json:"mapLink,omitempty"`
	ShippingAddress  ShippingAddress `json:"shippingAddress"`
	Items            []Item          `json:"items"`
	CreatedAt        string          `json:"createdAt,omitempty"`
	UpdatedAt        string          `json:"updatedAt,omitempty"`
}
