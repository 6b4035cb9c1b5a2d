package envelope

import (
	"errors"
	"testing"
)

func TestInsulationKindValid(t *testing.T) {
	cases := []struct {
		k    InsulationKind
		want bool
	}{
		{InsulationUnknown, false},
		{InsulationFiberglass, true},
		{InsulationMineralWool, true},
		{InsulationFlashBatt, true},
		{InsulationOpenCellFoam, true},
		{InsulationClosedCellFoam, true},
		{InsulationKind(999), false},
		{InsulationKind(-1), false},
	}

	for _, tc := range cases {
		if got := tc.k.Valid(); got != tc.want {
			t.Fatalf("InsulationKind(%d).Valid()=%v want %v", tc.k, got, tc.want)
		}
	}
}

func TestParseInsulationKind_Table(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    InsulationKind
		wantErr bool
	}{
		{"fiberglass", "fiberglass", InsulationFiberglass, false},
		{"mineral wool", "mineral_wool", InsulationMineralWool, false},
		{"flash batt", "flash_batt", InsulationFlashBatt, false},
		{"open cell", "open_cell_foam", InsulationOpenCellFoam, false},
		{"closed cell", "closed_cell_foam", InsulationClosedCellFoam, false},
		{"invalid", "straw", InsulationUnknown, true},
		{"empty", "", InsulationUnknown, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInsulationKind(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInsulation) {
					t.Fatalf("ParseInsulationKind(%q) expected ErrInvalidInsulation, got %v", tc.in, err)
				}
			} else if err != nil {
				t.Fatalf("ParseInsulationKind(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseInsulationKind(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestInsulationKindStringRoundTrip(t *testing.T) {
	for k := InsulationFiberglass; k.Valid(); k++ {
		got, err := ParseInsulationKind(k.String())
		if err != nil || got != k {
			t.Fatalf("round trip %v: got %v err %v", k, got, err)
		}
	}
	if InsulationKind(42).String() != "unknown" {
		t.Fatalf("expected unknown for out of range kind")
	}
}

func TestSheathingKindValid(t *testing.T) {
	cases := []struct {
		k    SheathingKind
		want bool
	}{
		{SheathingUnknown, false},
		{SheathingOSBWrap, true},
		{SheathingTapedOSB, true},
		{SheathingInsulatedR3, true},
		{SheathingInsulatedR6, true},
		{SheathingKind(7), false},
	}

	for _, tc := range cases {
		if got := tc.k.Valid(); got != tc.want {
			t.Fatalf("SheathingKind(%d).Valid()=%v want %v", tc.k, got, tc.want)
		}
	}
}

func TestParseSheathingKind_Table(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    SheathingKind
		wantErr bool
	}{
		{"osb wrap", "osb_wrap", SheathingOSBWrap, false},
		{"taped osb", "taped_osb", SheathingTapedOSB, false},
		{"r3", "insulated_r3", SheathingInsulatedR3, false},
		{"r6", "insulated_r6", SheathingInsulatedR6, false},
		{"invalid", "plywood", SheathingUnknown, true},
		{"empty", "", SheathingUnknown, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSheathingKind(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidSheathing) {
					t.Fatalf("ParseSheathingKind(%q) expected ErrInvalidSheathing, got %v", tc.in, err)
				}
			} else if err != nil {
				t.Fatalf("ParseSheathingKind(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseSheathingKind(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestKindsTextMarshal(t *testing.T) {
	b, _ := InsulationFlashBatt.MarshalText()
	if string(b) != "flash_batt" {
		t.Fatalf("got %q", b)
	}
	var k InsulationKind
	if err := k.UnmarshalText([]byte("mineral_wool")); err != nil || k != InsulationMineralWool {
		t.Fatalf("got %v err %v", k, err)
	}
	var s SheathingKind
	if err := s.UnmarshalText([]byte("nope")); err == nil {
		t.Fatal("expected error")
	}
	if s != SheathingUnknown {
		t.Fatalf("failed unmarshal must not modify value, got %v", s)
	}
}
