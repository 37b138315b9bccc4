package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTiers(t *testing.T) {
	tests := []struct {
		name     string
		stock    int
		label    string
		severity Severity
	}{
		{"negative stock is out of stock", -3, LabelOutOfStock, SeverityHigh},
		{"zero stock is out of stock", 0, LabelOutOfStock, SeverityHigh},
		{"one unit is low stock", 1, LabelLowStock, SeverityMedium},
		{"four units is low stock", 4, LabelLowStock, SeverityMedium},
		{"five units is in stock", 5, LabelInStock, SeverityNormal},
		{"large stock is in stock", 10000, LabelInStock, SeverityNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Classify(tt.stock)
			assert.Equal(t, tt.label, status.Label)
			assert.Equal(t, tt.severity, status.Severity)
		})
	}
}

func TestClassifySeverityMonotonic(t *testing.T) {
	// severity never increases as stock grows
	prev := Classify(-10).Severity
	for stock := -9; stock <= 20; stock++ {
		cur := Classify(stock).Severity
		assert.LessOrEqual(t, cur, prev, "severity rose between stock %d and %d", stock-1, stock)
		prev = cur
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	assert.Equal(t, Classify(3), Classify(3))
	assert.Equal(t, Classify(0), Classify(0))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "high", SeverityHigh.String())
	assert.Equal(t, "medium", SeverityMedium.String())
	assert.Equal(t, "normal", SeverityNormal.String())
}

func TestSeverityMarshalJSON(t *testing.T) {
	b, err := SeverityHigh.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"high"`, string(b))
}
