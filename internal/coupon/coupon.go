package coupon

import "time"

// Discount types.
const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

// Coupon maps to the `coupon` table. Codes are stored uppercase; lookups
// normalize before querying so "save10" and "SAVE10" are the same coupon.
type Coupon struct {
	ID            int       `json:"couponId"`
	Code          string    `json:"code"`
	Type          string    `json:"type"`
	Value         int64     `json:"value"`
	MinOrderValue int64     `json:"minOrderValue"`
	ExpiryDate    time.Time `json:"expiryDate"`
	UsageLimit    int       `json:"usageLimit"`
	UsedCount     int       `json:"usedCount"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     string    `json:"createdAt,omitempty"`
	UpdatedAt     string    `json:"updatedAt,omitempty"`
}

// Discount computes the rupee discount this coupon grants against the given
// cart total, capped so it can never exceed the total.
func (cp Coupon) Discount(cartTotal int64) int64 {
	var amount int64
	if cp.Type == TypePercentage {
		amount = cartTotal * cp.Value / 100
	} else {
		amount = cp.Value
	}
	if amount > cartTotal {
		amount = cartTotal
	}
	return amount
}
