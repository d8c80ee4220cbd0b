package client

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/tatertot/apartmentsapi/api/apartment"
)

// RenderTable writes rows as a text table, replacing whatever was shown
// before. The distance2 column only appears for dev snapshots.
func RenderTable(w io.Writer, rows []apartment.ApartmentModel, isDev bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	header := "ID\tNAME\tPRICE\tSQFT\tBEDS\tBATHS\tDIST1"
	if isDev {
		header += "\tDIST2"
	}
	header += "\tLINK"
	fmt.Fprintln(tw, header)

	for _, row := range rows {
		line := fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\t%s",
			row.ID,
			row.Name,
			formatNullable(row.Price),
			formatNumber(row.SquareFootage),
			formatNumber(row.Bedrooms),
			formatNumber(row.Bathrooms),
			formatNullable(row.Distance1),
		)
		if isDev {
			line += "\t" + formatNullable(row.Distance2)
		}
		if row.URL != nil {
			line += "\t" + *row.URL
		} else {
			line += "\t-"
		}
		fmt.Fprintln(tw, line)
	}

	tw.Flush()
	fmt.Fprintf(w, "%d row(s)\n", len(rows))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNullable(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatNumber(*v)
}
