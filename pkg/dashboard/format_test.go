package dashboard

import "testing"

func TestFormatHaltingHours(t *testing.T) {
	cases := []struct {
		hours    float64
		expected string
	}{
		{0, "0h"},
		{7, "7h"},
		{11.9, "11.9h"},
		{23.5, "23.5h"},
		{24, "1d 0h"},
		{26, "1d 2h"},
		{53.5, "2d 5.5h"},
	}

	for _, testCase := range cases {
		if display := FormatHaltingHours(testCase.hours); display != testCase.expected {
			t.Errorf("FormatHaltingHours(%v): expected %q, got %q", testCase.hours, testCase.expected, display)
		}
	}
}
