package ordermath

import "testing"

func TestKindStringCoversAllValues(t *testing.T) {
	for k := KindUnspecified; k <= KindShortClosePanic; k++ {
		if k.String() == "unknown" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}

func TestIsEntrySeparatesEntryFromClose(t *testing.T) {
	if !KindLongEntryGridNormal.IsEntry() {
		t.Fatal("grid entry should be an entry kind")
	}
	if KindLongCloseGridNormal.IsEntry() {
		t.Fatal("grid close should not be an entry kind")
	}
	if !KindShortEntryTrailingNormal.IsEntry() {
		t.Fatal("short trailing entry should be an entry kind")
	}
}
