package service

import (
	"strings"
	"testing"
)

func TestFingerprinterDeterminism(t *testing.T) {
	fp := NewFingerprinter("unit-secret")

	first := fp.HashIP("203.0.113.7")
	second := fp.HashIP("203.0.113.7")
	if first != second {
		t.Fatalf("expected identical hashes, got %q and %q", first, second)
	}

	other := NewFingerprinter("unit-secret")
	if other.HashIP("203.0.113.7") != first {
		t.Fatal("expected hash to survive a fresh instance with the same secret")
	}

	ua := "Mozilla/5.0 (X11; Linux x86_64)"
	if fp.Fingerprint(first, ua) != fp.Fingerprint(first, ua) {
		t.Fatal("expected identical fingerprints for identical inputs")
	}
}

func TestFingerprinterOutputsDiffer(t *testing.T) {
	fp := NewFingerprinter("unit-secret")

	if fp.HashIP("203.0.113.7") == fp.HashIP("203.0.113.8") {
		t.Fatal("expected different IPs to hash differently")
	}

	ipHash := fp.HashIP("203.0.113.7")
	if fp.Fingerprint(ipHash, "ua-one") == fp.Fingerprint(ipHash, "ua-two") {
		t.Fatal("expected different user agents to fingerprint differently")
	}

	otherSecret := NewFingerprinter("another-secret")
	if otherSecret.HashIP("203.0.113.7") == ipHash {
		t.Fatal("expected different secrets to produce different hashes")
	}
}

func TestHashIPDoesNotLeakInput(t *testing.T) {
	fp := NewFingerprinter("unit-secret")
	ip := "198.51.100.23"

	hash := fp.HashIP(ip)
	if len(hash) != 64 {
		t.Fatalf("expected 64 hex chars of sha256, got %d", len(hash))
	}
	if strings.Contains(hash, ip) {
		t.Fatal("hash must not embed the raw IP")
	}
	for _, r := range hash {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("unexpected character %q in hash", r)
		}
	}
}
