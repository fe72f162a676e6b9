package engine

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// GenerateID returns an identifier unique for the lifetime of a session:
// base-36 unix millis plus a random uuid fragment.
func GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + uuid.NewString()[:8]
}
