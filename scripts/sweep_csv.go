package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/Agrid-Dev/hersim/internal/envelope"
	"github.com/Agrid-Dev/hersim/internal/workbench"
)

type ACH50Sweep struct {
	From float64
	To   float64
	Step float64
}

// SweepACH50 tightens scenario A step by step and records how the rated
// energy, cost and HERS index respond. Scenario B stays at its default.
func SweepACH50(sweep ACH50Sweep, filename string) error {
	if !(sweep.Step > 0) || !(sweep.From > 0) || sweep.To < sweep.From {
		return fmt.Errorf("invalid sweep %+v", sweep)
	}

	wb, err := workbench.New(workbench.DefaultInputs())
	if err != nil {
		return fmt.Errorf("failed to create workbench: %v", err)
	}

	// Create CSV file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write([]string{"ACH50", "ACHnat", "HeatingKWh", "CoolingKWh", "TotalKWh", "TotalCost", "HERS", "SavingsVsB"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	steps := int((sweep.To-sweep.From)/sweep.Step + 0.5)
	for i := 0; i <= steps; i++ {
		ach50 := sweep.From + float64(i)*sweep.Step
		if err := wb.UpdateScenario(workbench.ScenarioA, func(s *envelope.ScenarioInputs) {
			s.ACH50 = ach50
		}); err != nil {
			return fmt.Errorf("failed to update ACH50: %v", err)
		}

		cmp := wb.Evaluate()
		rated := cmp.A.Rated
		if err := writer.Write([]string{
			fmt.Sprintf("%.2f", ach50),
			fmt.Sprintf("%.4f", rated.ACHNat),
			fmt.Sprintf("%.1f", rated.HeatingKWh),
			fmt.Sprintf("%.1f", rated.CoolingKWh),
			fmt.Sprintf("%.1f", rated.TotalKWh),
			fmt.Sprintf("%.2f", rated.TotalCost),
			fmt.Sprintf("%.1f", cmp.A.HERSIndex),
			fmt.Sprintf("%.1f", cmp.SavingsKWh),
		}); err != nil {
			return fmt.Errorf("failed to write CSV record: %v", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV file: %v", err)
	}
	return file.Close()
}

func main() {
	if err := SweepACH50(ACH50Sweep{From: 0.5, To: 10, Step: 0.5}, "ach50_sweep.csv"); err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}
}
