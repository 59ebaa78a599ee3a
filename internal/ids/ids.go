package ids

import (
	"errors"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// ErrInvalid reports an identifier that is not a valid ULID.
var ErrInvalid = errors.New("ids: invalid identifier")

// New returns a lexicographically sortable identifier suitable for storage keys.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Normalize parses raw as a ULID and returns its canonical string form.
// Audit records pass resource identifiers through this so stored IDs do not
// depend on how the caller spelled them.
func Normalize(raw string) (string, error) {
	id, err := ulid.Parse(raw)
	if err != nil {
		return "", ErrInvalid
	}
	return id.String(), nil
}
