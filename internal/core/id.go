package core

import (
	"github.com/oklog/ulid/v2"
)

// NewTradeID returns a ULID. IDs sort lexicographically by creation time, and
// IDs made within the same millisecond still increase.
func NewTradeID() string {
	return ulid.Make().String()
}
