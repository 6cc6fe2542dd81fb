// Node identities for simulated peers: x25519 key pairs addressed by the keccak256 of the public key
package nodeid

import (
	"encoding/hex"
	"fmt"
	"math/bits"

	"golang.org/x/crypto/sha3"
)

// Fixed length of a node id
const IDLen int = 32

type ID [IDLen]byte

// Keccak256 over the inputs in order
func Keccak256(inputs ...[]byte) (digest []byte, err error) {
	hasher := sha3.NewLegacyKeccak256()

	for _, input := range inputs {
		_, err = hasher.Write(input)
		if err != nil {
			err = fmt.Errorf("error writing data to hash: %w", err)
			return
		}
	}

	digest = hasher.Sum(nil)
	return
}

// Derives the node id from a public key
func FromPublicKey(public []byte) (id ID, err error) {
	if len(public) != KeyLen {
		err = fmt.Errorf("public key must be %d bytes, got %d", KeyLen, len(public))
		return
	}

	digest, err := Keccak256(public)
	if err != nil {
		return
	}
	copy(id[:], digest)
	return
}

// Parses the hex form produced by String
func Parse(text string) (id ID, err error) {
	raw, err := hex.DecodeString(text)
	if err != nil {
		err = fmt.Errorf("invalid node id %q: %w", text, err)
		return
	}
	if len(raw) != IDLen {
		err = fmt.Errorf("node id must be %d bytes, got %d", IDLen, len(raw))
		return
	}
	copy(id[:], raw)
	return
}

// Canonical lowercase hex
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Log2 distance between two ids: 0 when equal, 256 when the top bit differs
func (id ID) LogDistance(other ID) (distance uint64) {
	for i := range id {
		x := id[i] ^ other[i]
		if x != 0 {
			distance = uint64((IDLen-i-1)*8 + bits.Len8(x))
			return
		}
	}
	return
}
