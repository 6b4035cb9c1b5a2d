package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/hersim/internal/envelope"
)

func catalogCmd(_ *state) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List framing, airtightness and construction presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := envelope.Presets()
			return writeOutput(cmd.OutOrStdout(), output, cat, func(w io.Writer) error {
				return renderCatalog(w, cat)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func renderCatalog(w io.Writer, cat envelope.Catalog) error {
	lines := []string{"FRAMING\tDEPTH (in)\tDESCRIPTION"}
	for _, p := range cat.Framing {
		lines = append(lines, fmt.Sprintf("%s\t%.2f\t%s", p.Name, p.Value, p.Description))
	}

	lines = append(lines, "", "AIRTIGHTNESS\tACH50\tDESCRIPTION")
	for _, p := range cat.Airtightness {
		lines = append(lines, fmt.Sprintf("%s\t%.1f\t%s", p.Name, p.Value, p.Description))
	}

	lines = append(lines, "", "CONSTRUCTION\tWHOLE-WALL R\tASSEMBLY")
	for _, p := range cat.Construction {
		lines = append(lines, fmt.Sprintf("%s\t%.1f\t%s", p.Name, envelope.WholeWallR(p.Value).EffectiveR, describeWall(p.Value)))
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for _, l := range lines {
		if _, err := fmt.Fprintln(tw, l); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\ninsulation: %s\nsheathing: %s\n",
		strings.Join(cat.Insulation, ", "), strings.Join(cat.Sheathing, ", "))
	return err
}

func describeWall(w envelope.WallAssemblyConfig) string {
	s := fmt.Sprintf("%.2fin %s, %s", w.FramingDepthIn, w.CavityInsulation, w.ExteriorSheathing)
	if w.InteriorThermalBreak {
		s += ", interior thermal break"
	}
	return s
}
