package redis

const (
	// KeyPrefixGeneration prefixes the per-owner search generation counter
	KeyPrefixGeneration = "marks:gen:"
	// KeyPrefixSearch prefixes cached search results
	KeyPrefixSearch = "marks:search:"
	// KeyPrefixRevoked prefixes revoked token ids
	KeyPrefixRevoked = "marks:revoked:"
)

// GenerationKey returns the Redis key holding the owner's cache generation
func GenerationKey(ownerID string) string {
	return KeyPrefixGeneration + ownerID
}

// SearchKey returns the Redis key for a cached search result. The
// generation is part of the key, so bumping it orphans older entries.
func SearchKey(ownerID string, generation int64, fingerprint string) string {
	return KeyPrefixSearch + ownerID + ":" + itoa(generation) + ":" + fingerprint
}

// RevokedKey returns the Redis key marking a token id as revoked
func RevokedKey(jti string) string {
	return KeyPrefixRevoked + jti
}
