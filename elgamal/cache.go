package elgamal

import (
	"github.com/drand/kyber"
	lru "github.com/hashicorp/golang-lru"

	"go.dedis.ch/elgamal/group"
)

// PowerCache is the exact discrete-log lookup table of spec.md §4.4:
// f^i for every i in [rangeMin, rangeMax], keyed by the canonical encoding
// of f^i so lookups are exact equality checks rather than point-equality
// scans, per the C++ original's PowerCache (an unordered_map<Ec,int>).
type PowerCache struct {
	byKey map[string]int64
}

// NewPowerCache builds the table f^i for i in [rangeMin, rangeMax]
// (inclusive), against base f under suite s. It returns ErrBadRange if
// rangeMin > rangeMax.
func NewPowerCache(s *group.Suite, f kyber.Point, rangeMin, rangeMax int64) (*PowerCache, error) {
	if rangeMin > rangeMax {
		return nil, ErrBadRange
	}
	pc := &PowerCache{byKey: make(map[string]int64, rangeMax-rangeMin+1)}
	putInRange := func(x kyber.Point, i int64) error {
		if i < rangeMin || i > rangeMax {
			return nil
		}
		return pc.put(s, x, i)
	}

	x := s.Identity()
	if err := putInRange(x, 0); err != nil {
		return nil, err
	}
	for i := int64(1); i <= rangeMax; i++ {
		x = s.Add(s.Point(), x, f)
		if err := putInRange(x, i); err != nil {
			return nil, err
		}
	}

	nf := s.Neg(s.Point(), f)
	x = s.Identity()
	for i := int64(-1); i >= rangeMin; i-- {
		x = s.Add(s.Point(), x, nf)
		if err := putInRange(x, i); err != nil {
			return nil, err
		}
	}
	return pc, nil
}

func (pc *PowerCache) put(s *group.Suite, x kyber.Point, i int64) error {
	key, err := s.Key(x)
	if err != nil {
		return err
	}
	pc.byKey[key] = i
	return nil
}

// GetExponent returns m such that f^m == g, per the C++ original's
// PowerCache::getExponent. ok is false if g is outside the cached range.
func (pc *PowerCache) GetExponent(s *group.Suite, g kyber.Point) (m int64, ok bool) {
	key, err := s.Key(g)
	if err != nil {
		return 0, false
	}
	m, ok = pc.byKey[key]
	return m, ok
}

// Clear discards every cached entry.
func (pc *PowerCache) Clear() {
	pc.byKey = make(map[string]int64)
}

// IsEmpty reports whether the cache holds no entries.
func (pc *PowerCache) IsEmpty() bool {
	return len(pc.byKey) == 0
}

// SetCache installs a PowerCache over priv's message base f spanning
// [rangeMin, rangeMax], so subsequent DecCache calls resolve in O(1)
// instead of by brute-force search, per the C++ original's
// PrivateKey::setCache.
func (priv *PrivateKey) SetCache(s *group.Suite, rangeMin, rangeMax int64) error {
	pc, err := NewPowerCache(s, priv.pub.f, rangeMin, rangeMax)
	if err != nil {
		return err
	}
	priv.cache = pc
	return nil
}

// ClearCache discards priv's PowerCache, reverting DecCache to brute-force
// unavailable (it will return ErrNotFound until SetCache is called again).
func (priv *PrivateKey) ClearCache() {
	priv.cache = nil
}

// DecCache decrypts c using the installed PowerCache, returning
// ErrNotFound if no cache is installed or the plaintext falls outside its
// range, per the C++ original's cache-mode PrivateKey::dec.
func (priv *PrivateKey) DecCache(s *group.Suite, c *CipherText) (int64, error) {
	if priv.cache == nil {
		return 0, ErrNotFound
	}
	powfm := priv.getPowerf(s, c)
	m, ok := priv.cache.GetExponent(s, powfm)
	if !ok {
		return 0, ErrNotFound
	}
	return m, nil
}

// DecryptCache is a bounded LRU memoization layer in front of Dec,
// supplemental to PowerCache (spec.md §4.4's Design Note): repeated
// decryption of the same ciphertext — common when a caller re-derives a
// running tally — skips the search entirely on a hit. Distinct from
// PowerCache: PowerCache indexes plaintexts by their group element,
// DecryptCache indexes previously-seen ciphertexts by their encoding.
type DecryptCache struct {
	lru *lru.Cache
}

// NewDecryptCache returns a DecryptCache holding at most size entries,
// evicting least-recently-used ciphertexts once full.
func NewDecryptCache(size int) (*DecryptCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &DecryptCache{lru: c}, nil
}

// Dec returns the cached plaintext for c if present; otherwise it decrypts
// c via priv.Dec with the given limit and memoizes the result.
func (dc *DecryptCache) Dec(s *group.Suite, priv *PrivateKey, c *CipherText, limit int) (int64, error) {
	key, err := cipherKey(s, c)
	if err != nil {
		return 0, err
	}
	if v, ok := dc.lru.Get(key); ok {
		return v.(int64), nil
	}
	m, err := priv.Dec(s, c, limit)
	if err != nil {
		return 0, err
	}
	dc.lru.Add(key, m)
	return m, nil
}

func cipherKey(s *group.Suite, c *CipherText) (string, error) {
	k1, err := s.Key(c.C1)
	if err != nil {
		return "", err
	}
	k2, err := s.Key(c.C2)
	if err != nil {
		return "", err
	}
	return k1 + "|" + k2, nil
}
