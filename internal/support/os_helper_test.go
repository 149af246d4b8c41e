package support

import "testing"

func TestGetEnvFallback(t *testing.T) {
	if got := GetEnv("GEONEST_TEST_UNSET_VAR", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv = %q, want fallback", got)
	}

	t.Setenv("GEONEST_TEST_SET_VAR", "value")
	if got := GetEnv("GEONEST_TEST_SET_VAR", "fallback"); got != "value" {
		t.Fatalf("GetEnv = %q, want value", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	if got := GetEnvInt("GEONEST_TEST_UNSET_INT", 42); got != 42 {
		t.Fatalf("GetEnvInt = %d, want 42", got)
	}

	t.Setenv("GEONEST_TEST_INT", "7")
	if got := GetEnvInt("GEONEST_TEST_INT", 42); got != 7 {
		t.Fatalf("GetEnvInt = %d, want 7", got)
	}

	t.Setenv("GEONEST_TEST_INT", "not-a-number")
	if got := GetEnvInt("GEONEST_TEST_INT", 42); got != 42 {
		t.Fatalf("GetEnvInt on garbage = %d, want fallback 42", got)
	}
}
