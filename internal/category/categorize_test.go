package category

import "testing"

func TestCategorizeExactMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"roof", Structural},
		{"hvac", Mechanical},
		{"landscaping", Aesthetic},
		{"windows", Efficiency},
		{"radon", Safety},
		{"  ROOF  ", Structural},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeSubstringMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Replace furnace filter", Mechanical},
		{"Flush water heater", Mechanical},
		{"Reseal deck", Structural},
		{"Clean gutters", Structural},
		{"Seal driveway", Structural},
		{"Test smoke detectors", Safety},
		{"Install crown molding", Aesthetic},
		{"Repaint exterior", Aesthetic},
		{"Add attic insulation", Efficiency},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeUnknown(t *testing.T) {
	for _, input := range []string{"", "widget", "call the neighbours"} {
		if got := Categorize(input); got != General {
			t.Errorf("Categorize(%q) = %q, want %q", input, got, General)
		}
	}
}
