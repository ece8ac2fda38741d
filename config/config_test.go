package config

import "testing"

func TestConfigReadsEnvironment(t *testing.T) {
	t.Setenv("RESTAURANT_TEST_KEY", "valor")

	if got := Config("RESTAURANT_TEST_KEY"); got != "valor" {
		t.Errorf("Config returned %q, want %q", got, "valor")
	}
}

func TestConfigOrFallback(t *testing.T) {
	t.Setenv("RESTAURANT_TEST_SET", "explicito")

	if got := ConfigOr("RESTAURANT_TEST_SET", "defecto"); got != "explicito" {
		t.Errorf("set variable ignored, got %q", got)
	}
	if got := ConfigOr("RESTAURANT_TEST_UNSET", "defecto"); got != "defecto" {
		t.Errorf("fallback not applied, got %q", got)
	}
}
