package main

import "testing"

func TestResolveAPIURLDefault(t *testing.T) {
	t.Setenv("VITALINK_API_URL", "")
	if got := resolveAPIURL(); got != "https://api.vitalink.health" {
		t.Errorf("resolveAPIURL() = %q, want the production default", got)
	}
}

func TestResolveAPIURLFromEnv(t *testing.T) {
	t.Setenv("VITALINK_API_URL", "http://localhost:8000")
	if got := resolveAPIURL(); got != "http://localhost:8000" {
		t.Errorf("resolveAPIURL() = %q, want %q", got, "http://localhost:8000")
	}
}
