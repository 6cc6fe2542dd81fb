package nodeid

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestKeccak256(t *testing.T) {
	tests := []struct {
		name     string
		input    [][]byte
		expected string
	}{
		{
			name:     "Nil Input",
			input:    nil,
			expected: "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			name:     "Empty Input",
			input:    [][]byte{[]byte("")},
			expected: "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			name:     "Split Input Matches Joined",
			input:    [][]byte{[]byte("ab"), []byte("c")},
			expected: "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := Keccak256(tt.input...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := hex.EncodeToString(digest); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	node, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := Parse(node.String())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if parsed != node.ID {
		t.Errorf("expected %s, got %s", node.ID, parsed)
	}

	for _, bad := range []string{"", "zz", "abcd"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("expected error parsing %q", bad)
		}
	}
}

func TestFromPrivateKeyDeterministic(t *testing.T) {
	private := bytes.Repeat([]byte{7}, KeyLen)

	a, err := FromPrivateKey(private)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := FromPrivateKey(private)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("expected identical ids, got %s and %s", a.ID, b.ID)
	}

	expected, err := FromPublicKey(a.Public)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != expected {
		t.Errorf("expected id to be keccak of public key")
	}

	if _, err := FromPrivateKey([]byte{1, 2, 3}); err == nil {
		t.Errorf("expected error for short private key")
	}
}

func TestLogDistance(t *testing.T) {
	var zero ID
	top := zero
	top[0] = 0x80
	low := zero
	low[IDLen-1] = 0x01
	mid := zero
	mid[IDLen-2] = 0x10

	tests := []struct {
		name     string
		a, b     ID
		expected uint64
	}{
		{name: "equal", a: zero, b: zero, expected: 0},
		{name: "lowest bit", a: zero, b: low, expected: 1},
		{name: "second byte from end", a: zero, b: mid, expected: 13},
		{name: "top bit", a: zero, b: top, expected: 256},
		{name: "symmetric", a: top, b: zero, expected: 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LogDistance(tt.b); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestNumberInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n, err := NumberInRange(3, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n < 3 || n > 5 {
			t.Fatalf("expected value in [3,5], got %d", n)
		}
	}
	if _, err := NumberInRange(5, 3); err == nil {
		t.Errorf("expected error for inverted range")
	}
}

func TestSharedSecretAgreement(t *testing.T) {
	alice, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bob, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ab, err := alice.SharedSecret(bob.Public)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := bob.SharedSecret(alice.Public)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(ab, ba) {
		t.Errorf("expected both sides to derive the same secret")
	}
}
