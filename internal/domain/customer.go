package domain

// Customer is one data row of the customers table. Name is the lookup key;
// duplicate inserts are resolved last-write-wins by updating in place.
type Customer struct {
	Row     int    `json:"row"` // 1-based row number in the store, header = row 1
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// HasContactInfo reports whether the record is complete enough to ship to.
func (c *Customer) HasContactInfo() bool {
	return c.Phone != "" && c.Address != ""
}
