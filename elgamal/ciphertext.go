package elgamal

import (
	"github.com/drand/kyber"
	"go.dedis.ch/elgamal/group"
)

// CipherText is a lifted ElGamal ciphertext (c1, c2) ∈ G × G, per spec.md
// §3. Every pair in G × G is a syntactically valid ciphertext; the
// identity pair (0, 0) is the valid ciphertext of the plaintext 0.
//
// CipherText values are plain structs, not internally synchronized — per
// spec.md §5, callers own them exclusively or arrange external
// synchronization, the same discipline the teacher applies to its own
// unsynchronized value types (key.Identity, key.Private).
type CipherText struct {
	C1, C2 kyber.Point
}

// NewCipherText returns the trivial ciphertext of 0, (identity, identity).
func NewCipherText(s *group.Suite) *CipherText {
	return &CipherText{C1: s.Identity(), C2: s.Identity()}
}

// Clear resets c to the trivial ciphertext of 0, in place.
func (c *CipherText) Clear(s *group.Suite) *CipherText {
	c.C1 = s.Identity()
	c.C2 = s.Identity()
	return c
}

// Add sets c = c ⊕ d = Enc(m1 + m2) given c = Enc(m1), d = Enc(m2), in
// place, and returns c.
func (c *CipherText) Add(s *group.Suite, d *CipherText) *CipherText {
	c.C1 = s.Add(s.Point(), c.C1, d.C1)
	c.C2 = s.Add(s.Point(), c.C2, d.C2)
	return c
}

// Mul sets c = k·c = Enc(k·m) given c = Enc(m), in place, and returns c.
func (c *CipherText) Mul(s *group.Suite, k kyber.Scalar) *CipherText {
	c.C1 = s.Mul(s.Point(), c.C1, k)
	c.C2 = s.Mul(s.Point(), c.C2, k)
	return c
}

// MulInt is Mul for a signed integer scalar.
func (c *CipherText) MulInt(s *group.Suite, k int64) *CipherText {
	return c.Mul(s, s.ScalarOf(k))
}

// Neg sets c = Enc(-m) given c = Enc(m), in place, and returns c.
func (c *CipherText) Neg(s *group.Suite) *CipherText {
	c.C1 = s.Neg(s.Point(), c.C1)
	c.C2 = s.Neg(s.Point(), c.C2)
	return c
}

// Clone returns an independent copy of c.
func (c *CipherText) Clone() *CipherText {
	return &CipherText{C1: c.C1.Clone(), C2: c.C2.Clone()}
}

// Equal reports whether c and d encode the same pair of group elements.
// Equal ciphertexts encrypt the same plaintext, but unequal ones may too —
// two ciphertexts of the same plaintext are equal only if they share the
// same randomness.
func (c *CipherText) Equal(d *CipherText) bool {
	return c.C1.Equal(d.C1) && c.C2.Equal(d.C2)
}

// Pure, non-mutating variants of the operations above. spec.md §9 notes
// both shapes are equally correct; these exist so callers (and tests) can
// use whichever fits, per the Design Note in spec.md §9.

// AddCipherTexts returns a new ciphertext encrypting m1+m2, given a = Enc(m1)
// and b = Enc(m2). a and b are left unmodified.
func AddCipherTexts(s *group.Suite, a, b *CipherText) *CipherText {
	return a.Clone().Add(s, b)
}

// MulCipherText returns a new ciphertext encrypting k*m, given c = Enc(m).
// c is left unmodified.
func MulCipherText(s *group.Suite, c *CipherText, k kyber.Scalar) *CipherText {
	return c.Clone().Mul(s, k)
}

// NegCipherText returns a new ciphertext encrypting -m, given c = Enc(m).
// c is left unmodified.
func NegCipherText(s *group.Suite, c *CipherText) *CipherText {
	return c.Clone().Neg(s)
}
