// Package template renders WhatsApp message templates.
package template

import (
	"sort"
	"strings"
)

// Variables available to order templates.
const (
	VarCustomerName = "customer_name"
	VarProductName  = "product_name"
	VarOrderID      = "order_id"
)

// Format replaces every {name} in message with vars[name]. Placeholders
// without a supplied value are left as written. Substituted values are not
// expanded again.
func Format(message string, vars map[string]string) string {
	if len(vars) == 0 {
		return message
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", vars[name])
	}

	return strings.NewReplacer(pairs...).Replace(message)
}
