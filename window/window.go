// Package window implements the fixed-base scalar-multiplication
// accelerator spec.md §4.2 attaches to each of a public key's three fixed
// bases f, g, h.
//
// There is no direct analogue for this in the teacher project: drand only
// ever multiplies by one aggregate secret scalar per signature, so it never
// needed fixed-base acceleration. This package is built directly from
// spec.md §4.2 and the original C++ header's fp::WindowMethod<Ec>
// (see original_source/external/mcl/include/mcl/elgamal.hpp), using only
// kyber point/scalar operations — no additional third-party dependency is
// warranted for a self-contained table built on top of the group adapter.
package window

import (
	"math/big"

	"github.com/drand/kyber"
	"go.dedis.ch/elgamal/group"
)

// DefaultWidth is the window width used unless a caller overrides it via
// PublicKey.EnableWindowMethod.
const DefaultWidth = 10

// Table precomputes small multiples of a single fixed base point B so that
// k*B, for arbitrary scalar k, is computed by table lookups and point
// additions only.
//
// Contract: for every scalar k, Table.Mul(k) equals k*B exactly as
// general kyber Point.Mul would compute it (spec.md §4.2). Table is built
// once and never mutated afterwards; it is safe to share across goroutines.
type Table struct {
	base   kyber.Point
	width  int
	digits int
	// comb[d][v] = v * (2^(d*width) * base), for v in [0, 2^width)
	comb [][]kyber.Point
}

// New builds a window table for base, sized for scalars up to bitSize bits
// wide, using a window of width bits per digit.
func New(base kyber.Point, bitSize, width int) *Table {
	if width <= 0 {
		width = DefaultWidth
	}
	digits := (bitSize + width - 1) / width
	if digits == 0 {
		digits = 1
	}

	t := &Table{base: base, width: width, digits: digits}
	t.comb = make([][]kyber.Point, digits)

	rowsPerDigit := 1 << uint(width)
	doubling := base.Clone()
	for d := 0; d < digits; d++ {
		row := make([]kyber.Point, rowsPerDigit)
		row[0] = base.Clone().Null()
		for v := 1; v < rowsPerDigit; v++ {
			row[v] = base.Clone().Add(row[v-1], doubling)
		}
		t.comb[d] = row
		if d+1 < digits {
			doubling = doubleNTimes(doubling, width)
		}
	}
	return t
}

func doubleNTimes(p kyber.Point, n int) kyber.Point {
	out := p.Clone()
	for i := 0; i < n; i++ {
		out.Add(out, out)
	}
	return out
}

// Mul returns k*base using only table lookups and point additions. A scalar
// wider than the table's digits*width bits is multiplied by general
// scalar multiplication instead, so the result is k*base in every case.
func (t *Table) Mul(k kyber.Scalar) kyber.Point {
	v := scalarToNonnegBigInt(k)
	if v.BitLen() > t.digits*t.width {
		return t.base.Clone().Mul(k, t.base)
	}
	return t.mulBigInt(v)
}

// MulInt returns k*base for a signed integer k, interpreting negative
// values the same way general scalar multiplication does: by first
// reducing k mod the group order via suite.
func (t *Table) MulInt(suite *group.Suite, k int64) kyber.Point {
	return t.Mul(suite.ScalarOf(k))
}

func (t *Table) mulBigInt(k *big.Int) kyber.Point {
	mask := big.NewInt(int64(1)<<uint(t.width) - 1)
	tmp := new(big.Int)
	acc := t.base.Clone().Null()
	for d := 0; d < t.digits; d++ {
		tmp.Rsh(k, uint(d*t.width))
		tmp.And(tmp, mask)
		v := tmp.Int64()
		if v == 0 {
			continue
		}
		acc.Add(acc, t.comb[d][v])
	}
	return acc
}

// scalarToNonnegBigInt decodes a kyber scalar's canonical little-endian
// byte encoding (the convention used by kyber's edwards25519 suite, per
// RFC 8032) into its nonnegative big.Int representative in [0, n).
func scalarToNonnegBigInt(k kyber.Scalar) *big.Int {
	b, err := k.MarshalBinary()
	if err != nil {
		panic(err)
	}
	rev := make([]byte, len(b))
	for i, c := range b {
		rev[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(rev)
}
