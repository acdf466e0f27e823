package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		vars     map[string]string
		expected string
	}{
		{"known placeholder", "Hi {x}", map[string]string{"x": "A"}, "Hi A"},
		{"unknown placeholder", "Hi {y}", map[string]string{"x": "A"}, "Hi {y}"},
		{"repeated placeholder", "{x} and {x}", map[string]string{"x": "A"}, "A and A"},
		{"nil vars", "Hi {x}", nil, "Hi {x}"},
		{"no placeholders", "plain text", map[string]string{"x": "A"}, "plain text"},
		{"value not re-expanded", "{a}{b}", map[string]string{"a": "{b}", "b": "B"}, "{b}B"},
		{"unbalanced braces", "{x", map[string]string{"x": "A"}, "{x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.message, tt.vars))
		})
	}
}

func TestFormat_OrderTemplate(t *testing.T) {
	msg := "New order #{order_id} received from {customer_name} for {product_name}."

	got := Format(msg, map[string]string{
		VarCustomerName: "Budi",
		VarProductName:  "500 Credits Package",
		VarOrderID:      "abc",
	})

	assert.Equal(t, "New order #abc received from Budi for 500 Credits Package.", got)
}
