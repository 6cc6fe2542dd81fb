package nodeid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// Random bytes of the given length, e.g. a WHOAREYOU id-nonce
func Nonce(size int) (nonce []byte, err error) {
	nonce = make([]byte, size)
	_, err = rand.Read(nonce)
	if err != nil {
		err = fmt.Errorf("failed to generate nonce: %w", err)
		return
	}
	return
}

// Random 8 byte request id in hex
func RequestID() (requestID string, err error) {
	raw, err := Nonce(8)
	if err != nil {
		return
	}
	requestID = hex.EncodeToString(raw)
	return
}

// Generates random integer between two numbers (including the min/max)
func NumberInRange(min, max int) (randomNumber int, err error) {
	if min > max {
		err = fmt.Errorf("min must be less than or equal to max")
		return
	}

	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		err = fmt.Errorf("failed reading in range: %w", err)
		return
	}

	randomNumber = int(n.Int64()) + min
	return
}
