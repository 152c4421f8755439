package token

import "encoding/json"

// Claims is the payload carried inside a signed token. The fixed fields are
// what the platform issues at login/register; Extra keeps any other claim
// keys so older or foreign tokens survive a verify/re-sign round trip.
//
// On the wire the fields are flattened into one JSON object using the keys
// the frontend already decodes: id, email, name, isAdmin, iat, exp.
type Claims struct {
	Subject   string
	Email     string
	Name      string
	IsAdmin   bool
	IssuedAt  int64
	ExpiresAt int64
	Extra     map[string]any
}

func (c Claims) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Extra)+6)
	for k, v := range c.Extra {
		m[k] = v
	}
	if c.Subject != "" {
		m["id"] = c.Subject
	}
	if c.Email != "" {
		m["email"] = c.Email
	}
	if c.Name != "" {
		m["name"] = c.Name
	}
	m["isAdmin"] = c.IsAdmin
	if c.IssuedAt != 0 {
		m["iat"] = c.IssuedAt
	}
	if c.ExpiresAt != 0 {
		m["exp"] = c.ExpiresAt
	}
	return json.Marshal(m)
}

func (c *Claims) UnmarshalJSON(b []byte) error {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if v, ok := m["id"].(string); ok {
		c.Subject = v
		delete(m, "id")
	}
	if v, ok := m["email"].(string); ok {
		c.Email = v
		delete(m, "email")
	}
	if v, ok := m["name"].(string); ok {
		c.Name = v
		delete(m, "name")
	}
	if v, ok := m["isAdmin"].(bool); ok {
		c.IsAdmin = v
		delete(m, "isAdmin")
	}
	if v, ok := m["iat"].(float64); ok {
		c.IssuedAt = int64(v)
		delete(m, "iat")
	}
	if v, ok := m["exp"].(float64); ok {
		c.ExpiresAt = int64(v)
		delete(m, "exp")
	}
	if len(m) > 0 {
		c.Extra = m
	}
	return nil
}

// Field returns a stringable claim value by its public name. Used by the
// ownership middleware to match route params against the caller's identity.
func (c Claims) Field(name string) (string, bool) {
	switch name {
	case "id":
		return c.Subject, c.Subject != ""
	case "email":
		return c.Email, c.Email != ""
	case "name":
		return c.Name, c.Name != ""
	}
	if v, ok := c.Extra[name]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}
