/*
Package randx provides functions for generating random identifiers.

It produces time-ordered message ids for the chat relay and UUID-based object
keys for uploaded files.
*/
package randx

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	// Base36Chars defines the character set used for message id suffixes (0-9, a-z).
	Base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

	// MessageSuffixLength is the number of random characters appended to a message id.
	MessageSuffixLength = 7
)

var base36Len = big.NewInt(int64(len(Base36Chars)))

// MessageID generates a unique, roughly time-ordered message identifier: the
// current Unix millisecond timestamp followed by a random Base36 suffix.
// Ids generated within the same millisecond stay unique through the suffix
// without needing a central counter.
func MessageID() string {
	suffix := make([]byte, MessageSuffixLength)

	for i := range suffix {
		num, err := rand.Int(rand.Reader, base36Len)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to the uuid package rather than returning an error.
			return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.NewString()[:MessageSuffixLength]
		}
		suffix[i] = Base36Chars[num.Int64()]
	}

	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + string(suffix)
}

// ConnectionID generates an opaque unique identifier for a live connection.
func ConnectionID() string {
	return uuid.NewString()
}

// ObjectKey generates a random storage key for an uploaded file, preserving
// the original file extension (which must include the leading dot).
func ObjectKey(ext string) string {
	return uuid.NewString() + ext
}
