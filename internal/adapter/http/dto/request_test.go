package dto

import (
	"encoding/json"
	"testing"
)

func TestNumericStringAcceptsStringsAndNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want NumericString
	}{
		{"quoted", `{"amount":"1000.50"}`, "1000.50"},
		{"bare number", `{"amount":1000.50}`, "1000.50"},
		{"integer", `{"amount":7}`, "7"},
		{"null", `{"amount":null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RecordInvestmentRequest
			if err := json.Unmarshal([]byte(tt.in), &req); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if req.Amount != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, req.Amount)
			}
		})
	}
}

func TestNumericStringRejectsOtherTypes(t *testing.T) {
	var req RecordInvestmentRequest
	if err := json.Unmarshal([]byte(`{"amount":true}`), &req); err == nil {
		t.Fatalf("expected error for boolean amount")
	}
}

func TestCreateFundRequestToUseCaseInput(t *testing.T) {
	var req CreateFundRequest
	body := `{"fundName":"Alpha","fundSymbol":"AF","vaultProxy":"0xV","comptrollerProxy":"0xC","creator":"0xM","entranceFeePercent":2.5}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	in := req.ToUseCaseInput()
	if in.FundName != "Alpha" || in.EntranceFeePercent != "2.5" || in.Creator != "0xM" {
		t.Fatalf("unexpected input %+v", in)
	}
}
