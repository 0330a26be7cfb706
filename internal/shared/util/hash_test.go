package util

import "testing"

func TestFingerprint(t *testing.T) {
	data := []byte("%PDF-1.4 resume")
	got := Fingerprint(data)
	if got != Fingerprint(data) {
		t.Fatalf("expected stable fingerprint, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("fingerprint contains non-hex character: %c", ch)
		}
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 hex characters, got %d", len(got))
	}
	if got == Fingerprint([]byte("other")) {
		t.Fatalf("expected different fingerprints for different content")
	}
}
