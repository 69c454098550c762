package elgamal

import "errors"

// The error taxonomy of spec.md §7. Every error is fatal to the operation
// that raised it; none are retried internally, and every error is
// surfaced to the caller rather than logged and swallowed — matching the
// plain-sentinel style of the teacher's key package (key/keys.go uses
// errors.New consistently rather than a custom error-code hierarchy).
var (
	// ErrInvalidBit is raised by EncWithZkp when the plaintext is not 0 or 1.
	ErrInvalidBit = errors.New("elgamal: plaintext is not 0 or 1")

	// ErrBadRange is raised by PowerCache initialization when rangeMin > rangeMax.
	ErrBadRange = errors.New("elgamal: rangeMin must not be greater than rangeMax")

	// ErrNotFound is raised by DecCache when no PowerCache is installed or
	// the decoded group element is absent from it; DecCache has no
	// success-flag form, so every miss is reported this way. store.LoadKey
	// also returns it for an unknown key name.
	ErrNotFound = errors.New("elgamal: plaintext not found in power cache")

	// ErrDecryptOverflow is raised by brute-force Dec when no match is found
	// within the configured number of steps.
	ErrDecryptOverflow = errors.New("elgamal: decryption exceeded search limit")

	// ErrDecodeError is raised by any deserializer on malformed, truncated,
	// or otherwise invalid input.
	ErrDecodeError = errors.New("elgamal: malformed encoding")

	// ErrInvalidProof is raised by VerifyBatch for each bit-proof that
	// fails Verify.
	ErrInvalidProof = errors.New("elgamal: bit proof does not verify")
)
