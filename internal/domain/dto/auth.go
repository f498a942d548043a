package dto

// Claims identifies the caller of an authenticated request. Tokens are
// issued by the storefront's identity provider; this service only verifies
// them.
type Claims struct {
	// Subject is carried in the registered "sub" claim.
	Subject string   `json:"-"`
	Email   string   `json:"email,omitempty"`
	Name    string   `json:"name,omitempty"`
	Roles   []string `json:"roles,omitempty"`
	// ShopID is the shop the caller owns. Empty means the subject.
	ShopID  string   `json:"shop_id,omitempty"`
}

// HasRole reports whether the claims carry role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// OwnedShop returns the shop the caller owns.
func (c *Claims) OwnedShop() string {
	if c.ShopID != "" {
		return c.ShopID
	}
	return c.Subject
}
