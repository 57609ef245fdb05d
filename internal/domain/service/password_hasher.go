package service

// PasswordHasher defines the interface for hashing and checking
// passwords, abstracting the hashing algorithm from the use cases.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the hash.
	Check(password, hash string) bool
}
