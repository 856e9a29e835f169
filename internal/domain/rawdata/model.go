package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
)

// Payload is one archived provider response.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	PayloadJSON string
	PayloadHash string
}

// WithHash fills PayloadHash from PayloadJSON.
func (p Payload) WithHash() Payload {
	sum := sha256.Sum256([]byte(p.PayloadJSON))
	p.PayloadHash = hex.EncodeToString(sum[:])
	return p
}
