package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123", "1 2"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeID(t *testing.T) {
	valid := []string{"12", "007", "999"}
	invalid := []string{"1", "1234", "", "ab", "1a", "12 ", "-12", "１２"}
	for _, s := range valid {
		if !IsValidEmployeeID(s, 2, 3) {
			t.Errorf("IsValidEmployeeID(%q, 2, 3) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidEmployeeID(s, 2, 3) {
			t.Errorf("IsValidEmployeeID(%q, 2, 3) = true, want false", s)
		}
	}
}

func TestIsValidCoordinates(t *testing.T) {
	if !IsValidLatitude(24.0) || !IsValidLatitude(-90) || !IsValidLatitude(90) {
		t.Error("IsValidLatitude rejected a valid latitude")
	}
	if IsValidLatitude(90.1) || IsValidLatitude(-91) {
		t.Error("IsValidLatitude accepted an out of range latitude")
	}
	if !IsValidLongitude(121.0) || !IsValidLongitude(-180) || !IsValidLongitude(180) {
		t.Error("IsValidLongitude rejected a valid longitude")
	}
	if IsValidLongitude(180.5) || IsValidLongitude(-181) {
		t.Error("IsValidLongitude accepted an out of range longitude")
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", "", "2025-04-01 - 2025-04-19"}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "latitude", Message: "latitude must be between -90 and 90"},
		{Field: "external_id", Message: "external_id is required"},
	}

	if got := errs.Error(); got != "latitude: latitude must be between -90 and 90; external_id: external_id is required" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if len(m) != 2 || m["external_id"] != "external_id is required" {
		t.Errorf("ToMap() = %v", m)
	}
}
