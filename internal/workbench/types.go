package workbench

import "fmt"

// ScenarioID is an integer enum.
type ScenarioID int

const (
	ScenarioUnknown ScenarioID = iota
	ScenarioA
	ScenarioB
)

func (id ScenarioID) Valid() bool {
	return id == ScenarioA || id == ScenarioB
}

func (id ScenarioID) String() string {
	switch id {
	case ScenarioA:
		return "a"
	case ScenarioB:
		return "b"
	default:
		return "unknown"
	}
}

func ParseScenarioID(s string) (ScenarioID, error) {
	switch s {
	case "a", "A":
		return ScenarioA, nil
	case "b", "B":
		return ScenarioB, nil
	default:
		return ScenarioUnknown, fmt.Errorf("%w: %q", ErrUnknownScenario, s)
	}
}
