package order

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(userID int) ([]Order, error)
	// ListAll returns every order, newest first (admin console).
	ListAll() ([]Order, error)
	// MarkPaid records a verified payment on the order identified by its
	// gateway order id and transitions it to (Processing, Paid). It is the
	// only write path for payment fields.
	MarkPaid(gatewayOrderID, paymentID, signature string, paidAt time.Time) (Order, error)
	// UpdateStatus sets the fulfilment status. The order is identified by its
	// gateway order id, matching the key the admin console sends.
	UpdateStatus(gatewayOrderID string, status Status) (Order, error)
	// Cancel transitions the order (by internal id) to (Cancelled, Failed)
	// regardless of its current state.
	Cancel(id int) (Order, error)
}

// InMemoryRepository backs service and handler tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Order
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord.ID = r.nextID
	r.nextID++
	r.storage = append(r.storage, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ord := range r.storage {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, ord := range r.storage {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, len(r.storage))
	copy(out, r.storage)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) MarkPaid(gatewayOrderID, paymentID, signature string, paidAt time.Time) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].GatewayOrderID == gatewayOrderID {
			r.storage[i].Status = StatusProcessing
			r.storage[i].PaymentStatus = PaymentPaid
			r.storage[i].GatewayPaymentID = paymentID
			r.storage[i].GatewaySignature = signature
			r.storage[i].PaidAt = &paidAt
			r.storage[i].UpdatedAt = paidAt.UTC().Format(time.RFC3339)
			return r.storage[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateStatus(gatewayOrderID string, status Status) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].GatewayOrderID == gatewayOrderID {
			r.storage[i].Status = status
			r.storage[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return r.storage[i], nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Cancel(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Status = StatusCancelled
			r.storage[i].PaymentStatus = PaymentFailed
			r.storage[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return r.storage[i], nil
		}
	}
	return Order{}, ErrNotFound
}
