package common

const (
	// TokenStorageKey is the single well-known slot the client persists its
	// bearer token under.
	TokenStorageKey = "jwt"

	// AuthorizationHeaderName carries the bearer token on backend requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)
