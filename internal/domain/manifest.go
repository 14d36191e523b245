package domain

// Shipping fee rule: orders with a merchandise subtotal at or above the
// threshold ship free, everything below pays the flat fee.
const (
	FreeShippingThreshold int64 = 3000
	FlatShippingFee       int64 = 60

	FeeLabelFree     = "free shipping"
	FeeLabelIncluded = "shipping included"
)

// ShippingFee returns the fee and its human label for a group subtotal.
func ShippingFee(subtotal int64) (int64, string) {
	if subtotal >= FreeShippingThreshold {
		return 0, FeeLabelFree
	}
	return FlatShippingFee, FeeLabelIncluded
}

// ManifestLine is one consolidated shipment: all shippable orders of one
// (buyer, phone, address) triple merged together. Derived, never persisted.
type ManifestLine struct {
	Buyer      string `json:"buyer"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	ItemDetail string `json:"item_detail"`
	Subtotal   int64  `json:"subtotal"`
	Fee        int64  `json:"fee"`
	FeeLabel   string `json:"fee_label"`
	GrandTotal int64  `json:"grand_total"`
}

type Manifest struct {
	Lines      []ManifestLine `json:"lines"`
	GrandTotal int64          `json:"grand_total"`
}
