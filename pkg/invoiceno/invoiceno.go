// Package invoiceno generates human-facing invoice labels. Labels are not keys:
// two bills may carry the same number.
package invoiceno

import (
	"fmt"
	"math/rand/v2"
)

// DefaultPrefix is printed before the random digits.
const DefaultPrefix = "#FW-"

// New returns prefix followed by a random number in [1000, 9999].
func New(prefix string) string {
	return fmt.Sprintf("%s%04d", prefix, 1000+rand.IntN(9000))
}
