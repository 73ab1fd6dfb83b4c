package core

import "testing"

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults must validate, got %v", err)
	}

	bads := []Settings{
		{Currency: "BTC", DistanceUnit: Kilometers, VolumeUnit: Liters},
		{Currency: EUR, DistanceUnit: "furlong", VolumeUnit: Liters},
		{Currency: EUR, DistanceUnit: Kilometers, VolumeUnit: "pint"},
	}
	for i, s := range bads {
		if err := s.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSettingsUpdateApply(t *testing.T) {
	unit := Miles
	got := SettingsUpdate{DistanceUnit: &unit}.Apply(DefaultSettings())
	if got.DistanceUnit != Miles {
		t.Fatalf("patched field not applied: %+v", got)
	}
	if got.Currency != USD || got.VolumeUnit != Liters {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}
