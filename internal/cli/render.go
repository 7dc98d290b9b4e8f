package cli

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/okian/horsepower/internal/domain/types"
)

const percentScale = 100

// renderComparison draws one row per metric. Percentile modes print
// percentiles on a 0-100 scale; spread prints ratios to the group mean.
func renderComparison(c types.Comparison) string {
	tbl := newTable()
	tbl.SetTitle(c.Label)

	spread := c.Mode == types.ModeSpread
	if spread {
		tbl.AppendHeader(table.Row{"Metric", "Value", "Subject / Mean", "Mean", "Std / Mean"})
	} else {
		tbl.AppendHeader(table.Row{"Metric", "Value", "Subject %ile", "Reference %ile"})
	}

	for i, name := range c.Metrics {
		value := strconv.FormatFloat(c.SubjectValues[i], 'f', -1, 64)
		if spread {
			tbl.AppendRow(table.Row{name, value,
				fmt.Sprintf("%.2f", c.Subject[i]),
				fmt.Sprintf("%.2f", c.Reference[i]),
				fmt.Sprintf("%.2f", c.Band[i]),
			})
			continue
		}
		tbl.AppendRow(table.Row{name, value,
			fmt.Sprintf("%.1f", c.Subject[i]*percentScale),
			fmt.Sprintf("%.1f", c.Reference[i]*percentScale),
		})
	}

	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	footer := fmt.Sprintf("Group size: %d", c.GroupSize)
	if c.SubgroupSize > 0 {
		footer += fmt.Sprintf(", position size: %d", c.SubgroupSize)
	}
	if c.Match != nil && c.Match.Distance != nil {
		footer += fmt.Sprintf(", distance: %.3f", *c.Match.Distance)
	}
	tbl.AppendFooter(table.Row{footer})
	return tbl.Render()
}

// newTable returns a light-style writer that prints headers and footers as given.
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault
	return tbl
}
