package security

import (
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

const argon2idPrefix = "$argon2id$"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Hasher writes digests with the configured algorithm and verifies digests
// of either supported algorithm, picked by the digest's prefix.
type Hasher struct {
	algorithm   string
	bcryptCost  int
	argonParams *argon2id.Params
}

func NewPasswordHasher(algorithm string) (*Hasher, error) {
	switch algorithm {
	case "", HasherBcrypt:
		algorithm = HasherBcrypt
	case HasherArgon2id:
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", algorithm)
	}

	return &Hasher{
		algorithm:   algorithm,
		bcryptCost:  bcrypt.DefaultCost,
		argonParams: argon2id.DefaultParams,
	}, nil
}

func (h *Hasher) Algorithm() string {
	return h.algorithm
}

func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == HasherArgon2id {
		return argon2id.CreateHash(password, h.argonParams)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h *Hasher) Verify(password, hash string) bool {
	if strings.HasPrefix(hash, argon2idPrefix) {
		match, err := argon2id.ComparePasswordAndHash(password, hash)
		return err == nil && match
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
