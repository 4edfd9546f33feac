package ports

// PasswordHasher produces salted one-way hashes and compares candidates in
// constant time. Neither plaintext nor hash is ever logged.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}
