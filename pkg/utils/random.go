package utils

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// rand.Rand is not safe for concurrent use and shortcuts are generated on
// request goroutines, so the generator sits behind a mutex.
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// GenerateShortcut returns a random URL-safe alphanumeric string of the
// given length. Safe for concurrent use. Uniqueness is not guaranteed here;
// the links table's unique index is the final arbiter.
func GenerateShortcut(length int) string {
	b := make([]byte, length)
	rngMu.Lock()
	for i := range b {
		b[i] = charset[rng.Intn(len(charset))]
	}
	rngMu.Unlock()
	return string(b)
}

// GenerateAPIKey generates a UUID string to be used as an API key
func GenerateAPIKey() string {
	return uuid.NewString()
}
