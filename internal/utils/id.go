package utils

import (
	"crypto/rand"
	"strconv"
	"time"
)

// Alphabet used for room ids. Mirrors shortuuid: no lookalike
// characters (0/O, 1/l/I) so ids survive being read aloud.
const roomIDAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const roomIDLength = 6

// NewRoomID returns a short random room identifier.
func NewRoomID() string {
	buf := make([]byte, roomIDLength)
	if _, err := rand.Read(buf); err != nil {
		// Fallback to timestamp if crypto/rand is unavailable.
		s := strconv.FormatInt(time.Now().UnixNano(), 36)
		if len(s) > roomIDLength {
			s = s[len(s)-roomIDLength:]
		}
		return s
	}

	for i, b := range buf {
		buf[i] = roomIDAlphabet[int(b)%len(roomIDAlphabet)]
	}
	return string(buf)
}
