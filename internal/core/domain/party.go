// internal/core/domain/party.go
package domain

// Contact is the shape shared by manufacturers and suppliers. All five
// fields together form the dedup identity.
type Contact struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Validate requires every contact field
func (c *Contact) Validate() error {
	for _, f := range []struct{ field, value string }{
		{"name", c.Name},
		{"country", c.Country},
		{"address", c.Address},
		{"phone", c.Phone},
		{"email", c.Email},
	} {
		if err := requireText(f.field, f.value); err != nil {
			return err
		}
	}
	return nil
}

// Manufacturer produces the goods stocked in a warehouse
type Manufacturer struct {
	Base
	Contact
}

// Supplier delivers the goods stocked in a warehouse
type Supplier struct {
	Base
	Contact
}

// ContactPatch is a partial update of a Contact
type ContactPatch struct {
	Name    *string `json:"name,omitempty"`
	Country *string `json:"country,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

// Validate rejects blank values for present fields
func (p *ContactPatch) Validate() error {
	for _, f := range []struct {
		field string
		value *string
	}{
		{"name", p.Name},
		{"country", p.Country},
		{"address", p.Address},
		{"phone", p.Phone},
		{"email", p.Email},
	} {
		if f.value == nil {
			continue
		}
		if err := requireText(f.field, *f.value); err != nil {
			return err
		}
	}
	return nil
}

// Changes returns the columns present in the patch
func (p *ContactPatch) Changes() Changes {
	c := Changes{}
	setIfPresent(c, "name", p.Name)
	setIfPresent(c, "country", p.Country)
	setIfPresent(c, "address", p.Address)
	setIfPresent(c, "phone", p.Phone)
	setIfPresent(c, "email", p.Email)
	return c
}
