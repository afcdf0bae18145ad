package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity kinds used as id prefixes.
const (
	KindUser    = "user"
	KindPost    = "post"
	KindComment = "comment"
	KindEvent   = "event"
)

// NewID returns an opaque id of the form <kind>_<unixMillis>_<random>.
// Consumers must treat ids as unstructured tokens.
func NewID(kind string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s_%d_%s", kind, now.UnixMilli(), random)
}
