package ports

// TokenProvider issues and verifies signed bearer tokens carrying a user id.
type TokenProvider interface {
	Issue(userID string) (string, error)
	// Verify returns domain.ErrInvalidCredentials for any malformed,
	// tampered or expired token.
	Verify(token string) (string, error)
}

// PasswordHasher hashes and checks credentials with an adaptive algorithm.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}
