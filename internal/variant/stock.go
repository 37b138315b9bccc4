package variant

import "encoding/json"

// Severity ranks a stock status for display urgency. Higher values are more
// urgent: an out-of-stock tire outranks a low-stock one.
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "normal"
	}
}

// MarshalJSON renders the severity as its display name
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Storefront stock labels, in the shop's language
const (
	LabelOutOfStock = "Agotado"
	LabelLowStock   = "Pocas unidades"
	LabelInStock    = "En stock"
)

// Below this quantity a positive stock counts as low
const lowStockThreshold = 5

// StockStatus is the three-tier classification of a stock quantity
type StockStatus struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// Classify maps a stock quantity to its status. Total over all integers;
// negative quantities classify as out of stock.
func Classify(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockStatus{Label: LabelOutOfStock, Severity: SeverityHigh}
	case stock < lowStockThreshold:
		return StockStatus{Label: LabelLowStock, Severity: SeverityMedium}
	default:
		return StockStatus{Label: LabelInStock, Severity: SeverityNormal}
	}
}
