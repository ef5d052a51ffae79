package security

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of senha.
func HashPassword(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether senha matches the stored hash.
func CheckPassword(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
