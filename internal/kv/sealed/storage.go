// Package sealed wraps a kv.Storage and encrypts every value at rest.
//
// Values are sealed with ChaCha20-Poly1305 under a key derived from a
// passphrase with scrypt. Each write draws a fresh salt, so the derived key
// is unique per value and a zero nonce is safe.
package sealed

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"checklist/internal/kv"
)

// formatVersion is the current envelope version written to storage.
const formatVersion = 1

// ErrWrongPassphrase is returned when a value cannot be opened, either because
// the passphrase differs or the ciphertext was modified.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted value")

// ErrNotSealed is returned when a stored value is not a sealed envelope,
// typically plaintext written before a passphrase was configured.
var ErrNotSealed = errors.New("value is not sealed")

// Upper bounds on the stored scrypt cost; 128*r*N bytes is 64 MiB at the limit.
const (
	maxN = 1 << 16
	maxR = 8
	maxP = 4
)

// envelope is the JSON structure stored in the inner storage.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// Storage encrypts values before handing them to the inner storage.
type Storage struct {
	inner      kv.Storage
	passphrase []byte
	n, r, p    int
}

// New returns a Storage with the default scrypt cost.
func New(inner kv.Storage, passphrase string) *Storage {
	n, r, p := scryptParamsDefault()
	return NewWithParams(inner, passphrase, n, r, p)
}

// NewWithParams returns a Storage with explicit scrypt parameters.
// Lower costs are only appropriate for tests.
func NewWithParams(inner kv.Storage, passphrase string, n, r, p int) *Storage {
	return &Storage{
		inner:      inner,
		passphrase: []byte(passphrase),
		n:          n,
		r:          r,
		p:          p,
	}
}

func (s *Storage) Get(key string) ([]byte, error) {
	b, err := s.inner.Get(key)
	if err != nil {
		return nil, err
	}
	return s.open(b)
}

func (s *Storage) Set(key string, value []byte) error {
	b, err := s.seal(value)
	if err != nil {
		return fmt.Errorf("seal value: %w", err)
	}
	return s.inner.Set(key, b)
}

func (s *Storage) Delete(key string) error {
	return s.inner.Delete(key)
}

func (s *Storage) seal(raw []byte) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(s.passphrase, salt[:], s.n, s.r, s.p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(envelope{
		V:      formatVersion,
		Salt:   salt[:],
		N:      s.n,
		R:      s.r,
		P:      s.p,
		Cipher: ct,
	})
}

func (s *Storage) open(b []byte) ([]byte, error) {
	env, ok := decodeEnvelope(b)
	if !ok {
		return nil, ErrNotSealed
	}
	if env.V > formatVersion {
		return nil, fmt.Errorf("unsupported envelope version %d", env.V)
	}
	if env.N < 2 || env.N > maxN || env.R < 1 || env.R > maxR || env.P < 1 || env.P > maxP {
		return nil, fmt.Errorf("unsupported scrypt parameters N=%d r=%d p=%d", env.N, env.R, env.P)
	}

	key, err := scrypt.Key(s.passphrase, env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, env.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return pt, nil
}

// IsSealed reports whether b looks like a value written by Storage.
func IsSealed(b []byte) bool {
	_, ok := decodeEnvelope(b)
	return ok
}

func decodeEnvelope(b []byte) (envelope, bool) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return envelope{}, false
	}
	if env.V < 1 || len(env.Salt) == 0 || len(env.Cipher) == 0 {
		return envelope{}, false
	}
	return env, true
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() (n, r, p int) { return 1 << 15, 8, 1 }

var _ kv.Storage = (*Storage)(nil)
