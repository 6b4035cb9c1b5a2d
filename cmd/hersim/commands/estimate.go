package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

type estimateReport struct {
	Inputs     workbench.Inputs    `json:"inputs" yaml:"inputs"`
	Comparison envelope.Comparison `json:"comparison" yaml:"comparison"`
}

func estimateCmd(st *state) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Evaluate scenario A against scenario B once and print the comparison",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := st.cfg.Inputs()
			if err != nil {
				return err
			}
			report := estimateReport{
				Inputs:     in,
				Comparison: envelope.Evaluate(in.Shared, in.A, in.B),
			}
			st.logger.Debug().
				Float64("hers_a", report.Comparison.A.HERSIndex).
				Float64("hers_b", report.Comparison.B.HERSIndex).
				Msg("estimate computed")

			return writeOutput(cmd.OutOrStdout(), output, report, func(w io.Writer) error {
				return renderComparison(w, report.Comparison)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

type comparisonRow struct {
	label  string
	format string
	value  func(envelope.ScenarioResult) float64
}

var comparisonRows = []comparisonRow{
	{"Whole-wall R", "%.2f", func(r envelope.ScenarioResult) float64 { return r.Wall.EffectiveR }},
	{"Stud path R", "%.2f", func(r envelope.ScenarioResult) float64 { return r.Wall.StudPathR }},
	{"Cavity path R", "%.2f", func(r envelope.ScenarioResult) float64 { return r.Wall.CavityPathR }},
	{"Window U", "%.2f", func(r envelope.ScenarioResult) float64 { return r.Rated.WindowU }},
	{"Ceiling U", "%.4f", func(r envelope.ScenarioResult) float64 { return r.Rated.CeilingU }},
	{"ACH50", "%.1f", func(r envelope.ScenarioResult) float64 { return r.Envelope.Airtightness.ACH50 }},
	{"ACHnat", "%.3f", func(r envelope.ScenarioResult) float64 { return r.Rated.ACHNat }},
	{"UA (BTU/h-F)", "%.0f", func(r envelope.ScenarioResult) float64 { return r.Rated.UA.Total() }},
	{"Heating (kWh/yr)", "%.0f", func(r envelope.ScenarioResult) float64 { return r.Rated.HeatingKWh }},
	{"Cooling (kWh/yr)", "%.0f", func(r envelope.ScenarioResult) float64 { return r.Rated.CoolingKWh }},
	{"HVAC total (kWh/yr)", "%.0f", func(r envelope.ScenarioResult) float64 { return r.Rated.TotalKWh }},
	{"HVAC cost ($/yr)", "%.0f", func(r envelope.ScenarioResult) float64 { return r.Rated.TotalCost }},
	{"Reference (kWh/yr)", "%.0f", func(r envelope.ScenarioResult) float64 { return r.Reference.TotalKWh }},
	{"HERS index", "%.0f", func(r envelope.ScenarioResult) float64 { return r.HERSIndex }},
}

// renderComparison writes the side-by-side table followed by the A minus B deltas.
func renderComparison(w io.Writer, c envelope.Comparison) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "\t%s\t%s\n", c.A.Name, c.B.Name); err != nil {
		return err
	}
	for _, row := range comparisonRows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
			row.label, p.Sprintf(row.format, row.value(c.A)), p.Sprintf(row.format, row.value(c.B))); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := p.Fprintf(w, "\nSavings (A - B): %.0f kWh/yr, $%.0f/yr, HERS %+.1f\n",
		c.SavingsKWh, c.SavingsCost, c.HERSDelta)
	return err
}
