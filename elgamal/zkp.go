package elgamal

import (
	"fmt"

	"github.com/drand/kyber"
	multierror "github.com/hashicorp/go-multierror"
	"go.dedis.ch/elgamal/group"
)

// Zkp is a disjunctive Schnorr proof that a CipherText encrypts 0 or 1,
// per spec.md §4.6. (C0, S0) is the 0-branch transcript, (C1, S1) the
// 1-branch transcript; exactly one branch is honestly constructed, the
// other simulated, and the Fiat-Shamir challenge ties them together as
// cc = C0 + C1.
type Zkp struct {
	C0, C1, S0, S1 kyber.Scalar
}

// Batch pairs a ciphertext with the bit-proof attached to it, for
// VerifyBatch.
type Batch struct {
	Cipher *CipherText
	Proof  *Zkp
}

// VerifyBatch checks every (ciphertext, proof) pair in batch against pub,
// per spec.md §4.6's batch extension. It verifies every pair rather than
// stopping at the first failure, collecting every failing index into a
// single combined error via go-multierror — the same accumulation style
// the teacher uses when validating a set of independent group shares.
func (p *PublicKey) VerifyBatch(s *group.Suite, batch []Batch) error {
	var result *multierror.Error
	for i, b := range batch {
		if !p.Verify(s, b.Cipher, b.Proof) {
			result = multierror.Append(result, fmt.Errorf("elgamal: proof %d: %w", i, ErrInvalidProof))
		}
	}
	return result.ErrorOrNil()
}
