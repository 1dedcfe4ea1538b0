package cli

import (
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

// Table renders rows under a header with aligned columns.
func Table(header []string, rows [][]string) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	_, _ = w.Write([]byte(strings.Join(header, "\t") + "\n"))
	for _, r := range rows {
		_, _ = w.Write([]byte(strings.Join(r, "\t") + "\n"))
	}
	_ = w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
