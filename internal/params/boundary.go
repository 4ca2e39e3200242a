package params

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"sync"
	"time"
)

// Boundary is a multipart delimiter generated once, on first use, and reused
// for every body encoded with it. It is safe for concurrent use.
type Boundary struct {
	once  sync.Once
	value string
}

// DefaultBoundary is shared by lists created without WithBoundary.
var DefaultBoundary = NewBoundary()

// NewBoundary returns a Boundary whose token is generated lazily.
func NewBoundary() *Boundary {
	return &Boundary{}
}

// FixedBoundary returns a Boundary with a preset token.
func FixedBoundary(token string) *Boundary {
	b := &Boundary{value: token}
	b.once.Do(func() {})
	return b
}

// String returns the token, generating it on the first call.
func (b *Boundary) String() string {
	b.once.Do(func() {
		b.value = randomToken()
	})
	return b.value
}

// randomToken renders a random 64-bit value in base 36.
func randomToken() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		binary.BigEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(buf[:]), 36)
}
