package coupon

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound   = errors.New("coupon not found")
	ErrCodeExists = errors.New("coupon code already exists")
)

type Repository interface {
	List() ([]Coupon, error)
	GetByCode(code string) (Coupon, error)
	Create(cp Coupon) (Coupon, error)
	Update(id int, cp Coupon) (Coupon, error)
	Delete(id int) error
	// IncrementUsage bumps used_count by one. Called exactly once per placed
	// order that references the coupon; never decremented.
	IncrementUsage(code string) error
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Coupon
	nextID  int
}

func NewInMemoryRepository(seed []Coupon) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, cp := range seed {
		cp.Code = strings.ToUpper(cp.Code)
		if cp.ID == 0 {
			cp.ID = r.nextID
		}
		if cp.ID >= r.nextID {
			r.nextID = cp.ID + 1
		}
		r.storage = append(r.storage, cp)
	}
	return r
}

func (r *InMemoryRepository) List() ([]Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Coupon, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByCode(code string) (Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code = strings.ToUpper(code)
	for _, cp := range r.storage {
		if cp.Code == code {
			return cp, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Create(cp Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp.Code = strings.ToUpper(cp.Code)
	for _, existing := range r.storage {
		if existing.Code == cp.Code {
			return Coupon{}, ErrCodeExists
		}
	}
	cp.ID = r.nextID
	r.nextID++
	r.storage = append(r.storage, cp)
	return cp, nil
}

func (r *InMemoryRepository) Update(id int, cp Coupon) (Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			cp.ID = id
			cp.Code = strings.ToUpper(cp.Code)
			r.storage[i] = cp
			return cp, nil
		}
	}
	return Coupon{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) IncrementUsage(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	code = strings.ToUpper(code)
	for i := range r.storage {
		if r.storage[i].Code == code {
			r.storage[i].UsedCount++
			return nil
		}
	}
	return ErrNotFound
}
