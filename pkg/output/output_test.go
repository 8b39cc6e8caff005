package output

import (
	"strings"
	"testing"
)

func TestValidFormat(t *testing.T) {
	for _, f := range []string{"json", "table", "text"} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false, want true", f)
		}
	}
	if ValidFormat("yaml") {
		t.Error("ValidFormat(\"yaml\") = true, want false")
	}
}

func TestFormatAsJSON(t *testing.T) {
	got, err := FormatAsJSON(map[string]int{"count": 3})
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"count":3}` {
		t.Errorf("FormatAsJSON = %q", got)
	}
}

func TestFormatAsPrettyJSON(t *testing.T) {
	got, err := FormatAsPrettyJSON(map[string]int{"count": 3})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\n") {
		t.Errorf("pretty JSON should be indented, got %q", got)
	}
}
