package checkout

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const trackingPrefix = "TRK"

// newTrackingNumber builds a client-generated tracking number: a fixed prefix,
// a base-36 millisecond timestamp, and a 6-char random base-36 suffix, all
// uppercase. Uniqueness is best-effort; collisions are not detected.
func newTrackingNumber() string {
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 36)

	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = alphabet[rand.Intn(len(alphabet))]
	}

	return trackingPrefix + strings.ToUpper(timestamp+string(suffix))
}
