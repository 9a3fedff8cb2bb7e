package models

// Identity is the signed-in user as reported by the identity provider.
// The chat core only reads it; it never authenticates anybody itself.
type Identity struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

func (i Identity) SignedIn() bool {
	return i.Email != ""
}
