package user

import (
	"sync"
	"time"
)

// OTPStore keeps pending one-time passwords keyed by mobile number. It is
// process-local: codes do not survive a restart and are not shared between
// instances, so a multi-instance deployment needs an external cache here.
type OTPStore struct {
	mu    sync.Mutex
	codes map[string]otpEntry
	now   func() time.Time
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

func NewOTPStore() *OTPStore {
	return &OTPStore{codes: make(map[string]otpEntry), now: time.Now}
}

// Put stores a code for the mobile number, replacing any previous one.
func (s *OTPStore) Put(mobile, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[mobile] = otpEntry{code: code, expiresAt: s.now().Add(ttl)}
}

// Get returns the pending code for the mobile number. Expired entries are
// removed on read and reported as expired.
func (s *OTPStore) Get(mobile string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[mobile]
	if !ok {
		return "", ErrOTPNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.codes, mobile)
		return "", ErrOTPExpired
	}
	return entry.code, nil
}

// Delete removes the code once consumed (or invalidated).
func (s *OTPStore) Delete(mobile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, mobile)
}
