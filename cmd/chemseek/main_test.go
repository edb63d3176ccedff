package main

import (
	"testing"

	"github.com/veldt-labs/chemseek/pkg/config"
)

func TestResolveEndpoint(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Client.BaseURL = "http://catalog.internal:9000"

	cases := []struct {
		name     string
		remote   bool
		override string
		want     string
	}{
		{"local catalog by default", false, "", ""},
		{"remote flag uses configured base_url", true, "", "http://catalog.internal:9000"},
		{"explicit url wins over base_url", true, "http://localhost:8080", "http://localhost:8080"},
		{"url alone implies remote", false, "http://localhost:8080", "http://localhost:8080"},
	}

	for _, tc := range cases {
		if got := resolveEndpoint(tc.remote, tc.override, cfg); got != tc.want {
			t.Errorf("%s: resolveEndpoint(%v, %q) = %q, want %q",
				tc.name, tc.remote, tc.override, got, tc.want)
		}
	}
}
