package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt cost used for all password digests
const DefaultCost = 12

// Hash hashes a password using bcrypt. The digest embeds a random salt,
// so hashing the same password twice yields different digests.
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a plaintext password with a stored digest.
// A malformed digest verifies as false, it never panics.
func Verify(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
