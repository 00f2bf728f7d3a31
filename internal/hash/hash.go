package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

var ErrInvalidHashFormat = errors.New("invalid encoded hash format")

const (
	scryptN    = 1 << 15
	scryptR    = 8
	scryptP    = 1
	saltLength = 16
	keyLength  = 64
)

// HashPassword derives a scrypt key from the password under a fresh random
// salt. The parameters and salt are encoded into the result, so verification
// needs nothing but the stored string:
//
//	$scrypt$n=32768,r=8,p=1$<base64 salt>$<base64 key>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", err
	}

	encoded := fmt.Sprintf("$scrypt$n=%d,r=%d,p=%d$%s$%s",
		scryptN, scryptR, scryptP,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// CheckPassword reports whether the password matches the stored hash. The
// derived key comparison is constant-time.
func CheckPassword(encoded, password string) bool {
	n, r, p, salt, key, err := decode(encoded)
	if err != nil {
		return false
	}

	candidate, err := scrypt.Key([]byte(password), salt, n, r, p, len(key))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decode(encoded string) (n, r, p int, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[1] != "scrypt" {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	if _, err := fmt.Sscanf(parts[2], "n=%d,r=%d,p=%d", &n, &r, &p); err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, ErrInvalidHashFormat
	}

	return n, r, p, salt, key, nil
}
