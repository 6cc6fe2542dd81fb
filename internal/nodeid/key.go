package nodeid

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// Fixed key length for x25519
const KeyLen int = 32

type Node struct {
	ID      ID
	Public  []byte
	private []byte
}

// Creates a node with a fresh x25519 key pair
func New() (node Node, err error) {
	private := make([]byte, KeyLen)
	_, err = rand.Read(private)
	if err != nil {
		err = fmt.Errorf("failed to generate random private key: %w", err)
		return
	}

	node, err = FromPrivateKey(private)
	return
}

// Rebuilds a node from an existing private key
func FromPrivateKey(private []byte) (node Node, err error) {
	if len(private) != KeyLen {
		err = fmt.Errorf("private key must be %d bytes, got %d", KeyLen, len(private))
		return
	}

	public, err := curve25519.X25519(private, curve25519.Basepoint)
	if err != nil {
		err = fmt.Errorf("failed to generate public key: %w", err)
		return
	}

	id, err := FromPublicKey(public)
	if err != nil {
		return
	}

	node = Node{
		ID:      id,
		Public:  public,
		private: append([]byte(nil), private...),
	}
	return
}

func (node Node) String() string {
	return node.ID.String()
}

// Derives the x25519 shared secret with a peer, as done when a handshake completes
func (node Node) SharedSecret(peerPublic []byte) (secret []byte, err error) {
	secret, err = curve25519.X25519(node.private, peerPublic)
	if err != nil {
		err = fmt.Errorf("failed to compute shared secret: %w", err)
		return
	}
	return
}
