package filters

import (
	"testing"
)

func TestBoolParam(t *testing.T) {
	tests := []struct {
		name         string
		params       Params
		key          string
		defaultValue bool
		want         bool
	}{
		{"nil params", nil, "BlackIs1", false, false},
		{"missing key", Params{"Columns": 1728}, "BlackIs1", false, false},
		{"true value", Params{"BlackIs1": true}, "BlackIs1", false, true},
		{"false value", Params{"BlackIs1": false}, "BlackIs1", true, false},
		{"wrong type falls back", Params{"BlackIs1": "true"}, "BlackIs1", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := boolParam(tt.params, tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("boolParam() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCCITTFaxDecodeParams(t *testing.T) {
	// Exercising a real fax stream needs sample data, but the parameter
	// plumbing that selects the sub-format can be checked directly.
	params := Params{
		"K":        -1,
		"Columns":  100,
		"Rows":     50,
		"BlackIs1": true,
	}

	if intParam(params, "K", 0) != -1 {
		t.Error("K should be -1")
	}
	if intParam(params, "Columns", 1728) != 100 {
		t.Error("Columns should be 100")
	}
	if intParam(params, "Rows", 0) != 50 {
		t.Error("Rows should be 50")
	}
	if !boolParam(params, "BlackIs1", false) {
		t.Error("BlackIs1 should be true")
	}
}
