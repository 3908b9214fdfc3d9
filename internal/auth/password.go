package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
// Hashes imported from PHP panels carry the $2y$ version tag, which is the
// same algorithm as $2a$ under a different historical label; the prefix is
// normalized before comparison so those accounts keep working.
func VerifyPassword(hash, plain string) bool {
	if strings.HasPrefix(hash, "$2y$") {
		hash = "$2a$" + hash[len("$2y$"):]
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
