package convert

import "testing"

func TestFitPreflightAcceptsEncodedFile(t *testing.T) {
	data := buildCyclingFIT(t)
	warnings, err := fitPreflight(data)
	if err != nil {
		t.Fatalf("fitPreflight error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings for a clean file, got %v", warnings)
	}
}

func TestFitPreflightRejectsBadMagic(t *testing.T) {
	data := buildCyclingFIT(t)
	data[8] = 'X'
	if _, err := fitPreflight(data); err == nil {
		t.Fatal("expected an error for a corrupted data type marker")
	}
}

func TestFitPreflightWarnsOnFileCRC(t *testing.T) {
	data := buildCyclingFIT(t)
	// Corrupt the trailing CRC bytes only.
	data[len(data)-1] ^= 0xFF
	warnings, err := fitPreflight(data)
	if err != nil {
		t.Fatalf("fitPreflight error: %v", err)
	}
	found := false
	for _, w := range warnings {
		if w.Kind == WarnDataQualityIssue {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a CRC warning, got %v", warnings)
	}
}

func TestFitPreflightRejectsShortInput(t *testing.T) {
	if _, err := fitPreflight([]byte{0x0E, 0x10}); err == nil {
		t.Fatal("expected an error for truncated input")
	}
}
