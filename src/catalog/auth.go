package catalog

// TokenIssuer mints and verifies the opaque session tokens handed to
// clients. Verification yields the requesting user's id.
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (userID string, err error)
}

// PasswordHasher hashes plaintext passwords and checks candidates against a
// stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) (bool, error)
}
