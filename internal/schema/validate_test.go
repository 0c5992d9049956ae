package schema

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"full", `{
			"engine_path": "C:/UE_5.3",
			"project": "Game.uproject",
			"extra_args": ["-stdout"],
			"timeout": "30m",
			"malformed": "skip",
			"test_list": "A,B,C",
			"report": {"file": "report.json", "bucket": "ci-reports"}
		}`, false},
		{"unknown field", `{"engine": "x"}`, true},
		{"bad malformed policy", `{"malformed": "ignore"}`, true},
		{"extra_args not strings", `{"extra_args": [1]}`, true},
		{"unknown report field", `{"report": {"path": "x"}}`, true},
		{"malformed JSON", `{"engine_path":`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateResults(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid report",
			data: `{"succeeded":2,"succeededWithWarnings":0,"failed":1,"notRun":0,"inProcess":0,
				"tests":[{"state":"Success"},{"state":"Fail","fullTestPath":"A.B.C"}]}`,
		},
		{
			name: "extra fields allowed",
			data: `{"devices":[],"succeeded":1,"succeededWithWarnings":0,"failed":0,"notRun":0,"inProcess":0,
				"comparisonExported":false,"tests":[{"state":"Success","entries":[]}]}`,
		},
		{
			name:    "missing counter",
			data:    `{"succeeded":1,"failed":0,"notRun":0,"inProcess":0,"tests":[]}`,
			wantErr: "results validation failed",
		},
		{
			name:    "negative counter",
			data:    `{"succeeded":-1,"succeededWithWarnings":0,"failed":0,"notRun":0,"inProcess":0,"tests":[]}`,
			wantErr: "results validation failed",
		},
		{
			name:    "test without state",
			data:    `{"succeeded":1,"succeededWithWarnings":0,"failed":0,"notRun":0,"inProcess":0,"tests":[{}]}`,
			wantErr: "results validation failed",
		},
		{
			name:    "not JSON",
			data:    `<html>`,
			wantErr: "invalid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResults([]byte(tt.data))
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateResults() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateResults() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateResults() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
