package orders

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
)

const orderNumberSuffixLen = 8

// orderNumberAlphabet is Crockford base32. It drops I, L, O and U so a
// number read aloud over the phone cannot be mistranscribed.
const orderNumberAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NumberGenerator produces order numbers of the form ORD-YYYYMMDD-XXXXXXXX
// where the suffix is 8 random characters from an unambiguous base32
// alphabet. The generator does not guarantee uniqueness; the unique index
// on orders.order_number does, and the service retries on collision.
type NumberGenerator struct {
	now  func() time.Time
	rand io.Reader
}

// NewNumberGenerator builds a generator backed by crypto/rand.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{now: time.Now, rand: rand.Reader}
}

// Generate returns a fresh order number for the current UTC date.
func (g *NumberGenerator) Generate() (string, error) {
	raw := make([]byte, orderNumberSuffixLen)
	if _, err := io.ReadFull(g.rand, raw); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read random suffix")
	}
	suffix := make([]byte, orderNumberSuffixLen)
	for i, b := range raw {
		// 32 divides 256 evenly, so masking keeps the draw uniform.
		suffix[i] = orderNumberAlphabet[b&0x1f]
	}
	date := g.now().UTC().Format("20060102")
	return fmt.Sprintf("ORD-%s-%s", date, suffix), nil
}
