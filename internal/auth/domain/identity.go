package domain

// Identity is either a LocalIdentity or a ProviderIdentity. The two are
// never merged: a Google login does not resolve to a stored client.
type Identity interface {
	Subject() string
	isIdentity()
}

// LocalIdentity is a client known to the credential store.
type LocalIdentity struct {
	ClientID string
	Email    string
	Name     string
}

func (l LocalIdentity) Subject() string { return l.ClientID }
func (LocalIdentity) isIdentity()       {}

// ProviderIdentity is asserted by an external identity provider.
type ProviderIdentity struct {
	Provider string `json:"provider"`
	Sub      string `json:"sub"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

func (p ProviderIdentity) Subject() string { return p.Sub }
func (ProviderIdentity) isIdentity()       {}

// LocalIdentityOf derives the identity of a stored client.
func LocalIdentityOf(c *Client) LocalIdentity {
	return LocalIdentity{ClientID: c.ID, Email: c.Email, Name: c.Name}
}
