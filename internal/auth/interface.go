package auth

// JWTVerifier defines the interface for JWT token verification.
// The middleware depends only on this, so tests and dev mode can swap it out.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the caller it names.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*Actor, error)

	// Close releases any resources held by the verifier.
	Close() error
}
