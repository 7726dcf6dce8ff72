// Package handid generates 26-character hand identifiers: UUIDv7 values
// encoded in Crockford base32. Ids sort lexicographically by creation time,
// which keeps hand histories ordered without a separate sequence number.
package handid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"
)

// Crockford's base32 alphabet, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Generator produces hand ids. The zero value uses crypto/rand and the wall
// clock; tests substitute Rand and Now for deterministic ids.
type Generator struct {
	Rand io.Reader
	Now  func() time.Time
}

// New returns a hand id from the default generator
func New() string {
	var g Generator
	return g.New()
}

// New returns a new 26-character hand id
func (g *Generator) New() string {
	return encodeBase32(g.uuidv7())
}

// uuidv7 builds a 128-bit UUIDv7: 48-bit millisecond timestamp, then random
// bits with the version and variant fields set.
func (g *Generator) uuidv7() [16]byte {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	src := io.Reader(rand.Reader)
	if g.Rand != nil {
		src = g.Rand
	}

	var id [16]byte
	ms := now().UnixMilli()
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)

	if _, err := io.ReadFull(src, id[6:]); err != nil {
		panic("handid: reading random bytes: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10

	return id
}

// encodeBase32 packs 128 bits into 26 base32 characters, big-endian, behind
// two zero bits of left padding (26*5 = 130 bits).
func encodeBase32(data [16]byte) string {
	var out [26]byte
	var acc uint32
	bits, n := 2, 0
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			out[n] = alphabet[(acc>>(bits-5))&0x1f]
			bits -= 5
			n++
		}
	}
	return string(out[:])
}

// decodeBase32 reverses encodeBase32. The id must already be validated.
func decodeBase32(id string) [16]byte {
	var data [16]byte
	var acc uint32
	bits, n := -2, 0
	for i := 0; i < len(id); i++ {
		acc = acc<<5 | uint32(strings.IndexByte(alphabet, id[i]))
		bits += 5
		for bits >= 8 && n < 16 {
			data[n] = byte(acc >> (bits - 8))
			bits -= 8
			n++
		}
	}
	return data
}

// Time extracts the creation time embedded in a hand id, truncated to
// millisecond precision.
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	data := decodeBase32(id)
	ms := int64(data[0])<<40 | int64(data[1])<<32 | int64(data[2])<<24 |
		int64(data[3])<<16 | int64(data[4])<<8 | int64(data[5])
	return time.UnixMilli(ms), nil
}

// Validate checks that an id is 26 characters of the base32 alphabet and
// fits in 128 bits.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("hand id must be 26 characters, got %d", len(id))
	}
	// The first character carries three data bits behind two zero pad
	// bits, so it must decode to 0-7.
	if id[0] > '7' {
		return fmt.Errorf("hand id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
