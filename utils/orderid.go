package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID builds the business-facing order id: "ORD-" + epoch millis
// + 9 random base36 chars. There is no uniqueness check against the
// store; collisions are only as unlikely as this suffix makes them.
func NewOrderID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}
