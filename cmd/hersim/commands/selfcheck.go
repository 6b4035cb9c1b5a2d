package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/hersim/internal/envelope"
)

var ErrSelfCheckFailed = errors.New("self-check failed")

type selfCheckReport struct {
	Passed bool                   `json:"passed" yaml:"passed"`
	Checks []envelope.CheckResult `json:"checks" yaml:"checks"`
}

func selfCheckCmd(st *state) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "selfcheck",
		Short: "Print the engine self-check results; exits non-zero if any check failed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := selfCheckReport{
				Passed: envelope.SelfCheckPassed(),
				Checks: envelope.SelfCheck(),
			}
			err := writeOutput(cmd.OutOrStdout(), output, report, func(w io.Writer) error {
				return renderSelfCheck(w, report)
			})
			if err != nil {
				return err
			}
			if !report.Passed {
				st.logger.Error().Msg("engine self-check failed")
				return ErrSelfCheckFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	return cmd
}

func renderSelfCheck(w io.Writer, r selfCheckReport) error {
	passed := 0
	for _, c := range r.Checks {
		status := "FAIL"
		if c.Pass {
			status = "PASS"
			passed++
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", status, c.Name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d/%d checks passed\n", passed, len(r.Checks))
	return err
}
