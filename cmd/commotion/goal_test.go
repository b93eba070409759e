package main

import "testing"

func TestParseGoal(t *testing.T) {
	tests := []struct {
		arg     string
		slider  bool
		want    float64
		wantErr bool
	}{
		{"8000", false, 8000, false},
		{"20", false, 100, false},
		{"42", true, 4200, false},
		{"3.7", true, 300, false},
		{"0", true, 100, false},
		{"-5", true, 100, false},
		{"lots", false, 0, true},
	}

	for _, tt := range tests {
		got, err := parseGoal(tt.arg, tt.slider)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseGoal(%q, %v) error = %v, wantErr %v", tt.arg, tt.slider, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("parseGoal(%q, %v) = %v, want %v", tt.arg, tt.slider, got, tt.want)
		}
	}
}
