package auth

// TokenVerifier resolves a bearer token to its session claims.
// The session middleware depends on this rather than on *Service.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*Claims, error)
}

// Ensure Service implements TokenVerifier
var _ TokenVerifier = (*Service)(nil)
