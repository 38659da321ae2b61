package validate

import "testing"

func TestEmail(t *testing.T) {
	if s, ok := Email("  admin@example.test "); !ok || s != "admin@example.test" {
		t.Fatalf("expected trimmed valid email, got %q %v", s, ok)
	}
	for _, bad := range []string{"", "admin", "admin@", "a b@example.test"} {
		if _, ok := Email(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestID(t *testing.T) {
	for _, good := range []string{"5", "-L9tH8jxVb2Ka_DYPwng"} {
		if _, ok := ID(good); !ok {
			t.Fatalf("expected %q to be accepted", good)
		}
	}
	for _, bad := range []string{"", "../x", "a/b", "a b"} {
		if _, ok := ID(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestPassword(t *testing.T) {
	if Password("") {
		t.Fatal("empty password accepted")
	}
	if !Password("example") {
		t.Fatal("short password rejected")
	}
}
