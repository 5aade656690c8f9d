package models

// TokenPair is the access/refresh token pair issued after a successful login
// or refresh. Both tokens are signed with the same secret but carry different
// expiry policies; neither is tracked server-side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult bundles the authenticated principal with its freshly issued
// token pair for the login response payload.
type LoginResult struct {
	User   *User     `json:"user,omitempty"`
	Tokens TokenPair `json:"tokens"`
}
