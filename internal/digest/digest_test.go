package digest

import "testing"

func TestSumDeterministic(t *testing.T) {
	d := SHA256{}
	a := d.Sum("secret")
	b := d.Sum("secret")
	if a != b {
		t.Fatalf("Expected identical digests, got %q and %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(a))
	}
}

func TestSumDistinguishesInputs(t *testing.T) {
	d := SHA256{}
	if d.Sum("secret") == d.Sum("Secret") {
		t.Fatal("Expected different inputs to produce different digests")
	}
}

func TestEqual(t *testing.T) {
	d := SHA256{}
	if !Equal(d.Sum("pw"), d.Sum("pw")) {
		t.Error("Expected equal digests to compare equal")
	}
	if Equal(d.Sum("pw"), d.Sum("other")) {
		t.Error("Expected different digests to compare unequal")
	}
}
