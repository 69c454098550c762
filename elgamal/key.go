package elgamal

import (
	"github.com/drand/kyber"
	"go.dedis.ch/elgamal/group"
	"go.dedis.ch/elgamal/window"
)

// DefaultBitSize is the scalar bit length the window tables built by
// EnableWindowMethod are sized for when GenerateKey or NewPublicKey create
// the key; 256 bits covers every scalar of the default Ed25519 group, whose
// order is a 253-bit prime (spec.md §4.2).
const DefaultBitSize = 256

// PublicKey holds the three fixed bases (f, g, h) of spec.md §4.1: g and h
// are Pedersen-style commitment bases, f is the message base whose
// discrete log is never computed directly, only recovered by search.
//
// A PublicKey is immutable after Init/EnableWindowMethod; it is safe to
// share across goroutines, mirroring the teacher's key.Public value type.
type PublicKey struct {
	bitSize int
	f, g, h kyber.Point

	windowed bool
	wmF, wmG, wmH *window.Table
}

// NewPublicKey builds a PublicKey directly from its three bases, with the
// window method disabled. Most callers obtain a PublicKey from
// PrivateKey.Init instead.
func NewPublicKey(f, g, h kyber.Point) *PublicKey {
	return &PublicKey{bitSize: DefaultBitSize, f: f, g: g, h: h}
}

// F returns the message base f.
func (p *PublicKey) F() kyber.Point { return p.f }

// G returns the blinding base g.
func (p *PublicKey) G() kyber.Point { return p.g }

// H returns the commitment base h = g^z.
func (p *PublicKey) H() kyber.Point { return p.h }

// EnableWindowMethod builds fixed-base comb tables over f, g and h, sized
// for scalars up to p's configured bit size, per spec.md §4.2. Once built,
// every Enc/EncWithZkp/Rerandomize/Add call on this key uses the tables
// instead of general scalar multiplication.
func (p *PublicKey) EnableWindowMethod(width int) {
	if width <= 0 {
		width = window.DefaultWidth
	}
	p.wmF = window.New(p.f, p.bitSize, width)
	p.wmG = window.New(p.g, p.bitSize, width)
	p.wmH = window.New(p.h, p.bitSize, width)
	p.windowed = true
}

func (p *PublicKey) mulF(s *group.Suite, k kyber.Scalar) kyber.Point {
	if p.windowed {
		return p.wmF.Mul(k)
	}
	return s.Mul(s.Point(), p.f, k)
}

func (p *PublicKey) mulG(s *group.Suite, k kyber.Scalar) kyber.Point {
	if p.windowed {
		return p.wmG.Mul(k)
	}
	return s.Mul(s.Point(), p.g, k)
}

func (p *PublicKey) mulH(s *group.Suite, k kyber.Scalar) kyber.Point {
	if p.windowed {
		return p.wmH.Mul(k)
	}
	return s.Mul(s.Point(), p.h, k)
}

// Enc encrypts m under p with fresh randomness u, returning
// c = (g^u, h^u f^m), per spec.md §4.3.
func (p *PublicKey) Enc(s *group.Suite, m int64) *CipherText {
	return p.EncScalar(s, s.ScalarOf(m))
}

// EncScalar is Enc for an arbitrary scalar plaintext.
func (p *PublicKey) EncScalar(s *group.Suite, m kyber.Scalar) *CipherText {
	u := s.Scalar().Pick(s.RandomStream())
	c1 := p.mulG(s, u)
	c2 := p.mulH(s, u)
	fm := p.mulF(s, m)
	c2 = s.Add(s.Point(), c2, fm)
	return &CipherText{C1: c1, C2: c2}
}

// EncWithZkp encrypts a single bit m (which must be 0 or 1) and attaches a
// disjunctive Schnorr NIZK that m is indeed 0 or 1, per spec.md §4.6. It
// returns ErrInvalidBit for any other value.
func (p *PublicKey) EncWithZkp(s *group.Suite, m int) (*CipherText, *Zkp, error) {
	if m != 0 && m != 1 {
		return nil, nil, ErrInvalidBit
	}
	u := s.Scalar().Pick(s.RandomStream())
	c1 := p.mulG(s, u)
	c2 := p.mulH(s, u)

	zkp := &Zkp{}
	if m == 1 {
		c2 = s.Add(s.Point(), c2, p.f)
		c := &CipherText{C1: c1, C2: c2}

		r1 := s.Scalar().Pick(s.RandomStream())
		zkp.C0 = s.Scalar().Pick(s.RandomStream())
		zkp.S0 = s.Scalar().Pick(s.RandomStream())

		t1 := p.mulG(s, zkp.S0)
		t2 := s.Mul(s.Point(), c.C1, zkp.C0)
		r01 := s.Sub(s.Point(), t1, t2)

		t1 = p.mulH(s, zkp.S0)
		t2 = s.Mul(s.Point(), c.C2, zkp.C0)
		r02 := s.Sub(s.Point(), t1, t2)

		r11 := p.mulG(s, r1)
		r12 := p.mulH(s, r1)

		cc := p.challenge(s, r01, r02, r11, r12, c)
		zkp.C1 = s.Scalar().Sub(cc, zkp.C0)
		zkp.S1 = s.Scalar().Add(r1, s.Scalar().Mul(zkp.C1, u))
		return c, zkp, nil
	}

	c := &CipherText{C1: c1, C2: c2}

	r0 := s.Scalar().Pick(s.RandomStream())
	zkp.C1 = s.Scalar().Pick(s.RandomStream())
	zkp.S1 = s.Scalar().Pick(s.RandomStream())

	r01 := p.mulG(s, r0)
	r02 := p.mulH(s, r0)

	t1 := p.mulG(s, zkp.S1)
	t2 := s.Mul(s.Point(), c.C1, zkp.C1)
	r11 := s.Sub(s.Point(), t1, t2)

	t1 = p.mulH(s, zkp.S1)
	t2 = s.Sub(s.Point(), c.C2, p.f)
	t2 = s.Mul(s.Point(), t2, zkp.C1)
	r12 := s.Sub(s.Point(), t1, t2)

	cc := p.challenge(s, r01, r02, r11, r12, c)
	zkp.C0 = s.Scalar().Sub(cc, zkp.C1)
	zkp.S0 = s.Scalar().Add(r0, s.Scalar().Mul(zkp.C0, u))
	return c, zkp, nil
}

// Verify checks that zkp proves c encrypts 0 or 1 under p, per spec.md
// §4.6. It does not reveal which of the two.
func (p *PublicKey) Verify(s *group.Suite, c *CipherText, zkp *Zkp) bool {
	t1 := p.mulG(s, zkp.S0)
	t2 := s.Mul(s.Point(), c.C1, zkp.C0)
	r01 := s.Sub(s.Point(), t1, t2)

	t1 = p.mulH(s, zkp.S0)
	t2 = s.Mul(s.Point(), c.C2, zkp.C0)
	r02 := s.Sub(s.Point(), t1, t2)

	t1 = p.mulG(s, zkp.S1)
	t2 = s.Mul(s.Point(), c.C1, zkp.C1)
	r11 := s.Sub(s.Point(), t1, t2)

	t1 = p.mulH(s, zkp.S1)
	t2 = s.Sub(s.Point(), c.C2, p.f)
	t2 = s.Mul(s.Point(), t2, zkp.C1)
	r12 := s.Sub(s.Point(), t1, t2)

	cc := p.challenge(s, r01, r02, r11, r12, c)
	sum := s.Scalar().Add(zkp.C0, zkp.C1)
	return cc.Equal(sum)
}

// challenge computes the Fiat-Shamir challenge binding the proof's
// commitments to the ciphertext and the public bases, so a proof for one
// ciphertext or key cannot be replayed against another.
func (p *PublicKey) challenge(s *group.Suite, r01, r02, r11, r12 kyber.Point, c *CipherText) kyber.Scalar {
	parts := make([][]byte, 0, 9)
	for _, pt := range []kyber.Point{r01, r02, r11, r12, c.C1, c.C2, p.f, p.g, p.h} {
		b, err := s.Encode(pt)
		if err != nil {
			panic(err)
		}
		parts = append(parts, b)
	}
	return s.HashToScalar(parts...)
}

// Rerandomize updates c in place to a fresh encryption of the same
// plaintext, (c1*g^v, c2*h^v), per spec.md §4.3, and returns c.
func (p *PublicKey) Rerandomize(s *group.Suite, c *CipherText) *CipherText {
	v := s.Scalar().Pick(s.RandomStream())
	c.C1 = s.Add(s.Point(), c.C1, p.mulG(s, v))
	c.C2 = s.Add(s.Point(), c.C2, p.mulH(s, v))
	return c
}

// Add updates c in place from Enc(m1) to Enc(m1+m2) by multiplying in
// f^m2, per spec.md §4.3, and returns c.
func (p *PublicKey) Add(s *group.Suite, c *CipherText, m2 int64) *CipherText {
	fm := p.mulF(s, s.ScalarOf(m2))
	c.C2 = s.Add(s.Point(), c.C2, fm)
	return c
}

// PrivateKey holds the discrete log z of h base g, alongside the public
// key and an optional PowerCache for fast decryption, per spec.md §4.1/4.4.
//
// A PrivateKey is not safe for concurrent use: SetCache/ClearCache mutate
// shared state, matching the teacher's own key.Pair, which callers are
// expected to guard externally.
type PrivateKey struct {
	pub   *PublicKey
	z     kyber.Scalar
	cache *PowerCache
}

// GenerateKey draws a fresh random message base f and a fresh key pair
// over it: g = f^z1, h = g^z2, returning (public, private).
func GenerateKey(s *group.Suite) (*PublicKey, *PrivateKey) {
	f := s.Point().Pick(s.RandomStream())
	priv := &PrivateKey{}
	priv.Init(s, f, DefaultBitSize)
	return priv.pub, priv
}

// Init derives g = f^z1 and h = g^z2 for fresh random z1, z2, builds the
// PublicKey over (f, g, h) with window tables enabled, and stores z2 as
// this key's secret, per the C++ original's PrivateKey::init.
func (priv *PrivateKey) Init(s *group.Suite, f kyber.Point, bitSize int) {
	z1 := s.Scalar().Pick(s.RandomStream())
	g := s.Mul(s.Point(), f, z1)
	z2 := s.Scalar().Pick(s.RandomStream())
	h := s.Mul(s.Point(), g, z2)

	pub := &PublicKey{bitSize: bitSize, f: f, g: g, h: h}
	pub.EnableWindowMethod(window.DefaultWidth)

	priv.pub = pub
	priv.z = z2
}

// PublicKey returns priv's public key.
func (priv *PrivateKey) PublicKey() *PublicKey { return priv.pub }

// getPowerf returns f^m = c2 - z*c1 for ciphertext c = Enc(m), per spec.md
// §4.4.
func (priv *PrivateKey) getPowerf(s *group.Suite, c *CipherText) kyber.Point {
	c1z := s.Mul(s.Point(), c.C1, priv.z)
	return s.Sub(s.Point(), c.C2, c1z)
}

// IsZeroMessage reports whether c encrypts 0, without a full decryption
// search, per spec.md §4.4.
func (priv *PrivateKey) IsZeroMessage(s *group.Suite, c *CipherText) bool {
	c1z := s.Mul(s.Point(), c.C1, priv.z)
	return c.C2.Equal(c1z)
}

// Dec decrypts c by brute-force search, trying m = 0, 1, -1, 2, -2, ...
// against f^m = c2 - z*c1 until a match is found or limit steps have
// elapsed, per spec.md §4.4. It returns ErrDecryptOverflow if no match is
// found within limit.
func (priv *PrivateKey) Dec(s *group.Suite, c *CipherText, limit int) (int64, error) {
	f := priv.pub.f
	c1z := s.Mul(s.Point(), c.C1, priv.z)
	if c1z.Equal(c.C2) {
		return 0, nil
	}

	t1 := c1z.Clone()
	t2 := c.C2.Clone()
	for i := int64(1); i < int64(limit); i++ {
		t1 = s.Add(s.Point(), t1, f) // t1 = c1z + i*f
		if t1.Equal(c.C2) {
			return i, nil
		}
		t2 = s.Add(s.Point(), t2, f) // t2 = c2 + i*f
		if t2.Equal(c1z) {
			return -i, nil
		}
	}
	return 0, ErrDecryptOverflow
}
