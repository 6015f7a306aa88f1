package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"pricing": map[string]any{
			"taxRate": "0.10",
			"scaling": "line",
		},
		"http": map[string]any{
			"maxRequestBodySize": "16KB",
			"timeouts": map[string]any{
				"readTimeout": "5s",
			},
		},
		"receipt": map[string]any{
			"outputDir": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "PRICING_TAXRATE", want: "pricing.taxRate"},
		{envKey: "HTTP_TIMEOUTS_READTIMEOUT", want: "http.timeouts.readTimeout"},
		{envKey: "HTTP_MAXREQUESTBODYSIZE", want: "http.maxRequestBodySize"},
		{envKey: "RECEIPT_OUTPUTDIR", want: "receipt.outputDir"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
