// Package runid generates sortable identifiers for estimation runs so that
// log lines from one run can be grouped.
package runid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in a run ID.
const Length = 26

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator produces run IDs from a clock and an optional RandSource.
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock means the real clock; a nil
// RandSource means crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate creates a new run ID: a UUIDv7 encoded as 26-character base32.
func (g *Generator) Generate() string {
	return encodeBase32(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var id [16]byte

	// 48-bit millisecond timestamp, then random bits with version and variant set
	now := g.clock.Now("runid").UnixMilli()
	for i := range 6 {
		id[i] = byte(now >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// encodeBase32 encodes 128 bits as 26 characters, 5 bits at a time from the
// most significant end. The final character carries the last 3 bits.
func encodeBase32(data [16]byte) string {
	result := make([]byte, Length)
	for i := range Length {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < 16 {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks that id is 26 characters of the base32 alphabet.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
