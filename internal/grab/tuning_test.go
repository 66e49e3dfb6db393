package grab

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadTuningMissingFileKeepsDefaults(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}
	if tuning != DefaultTuning() {
		t.Error("Missing file should yield the defaults")
	}
}

func TestLoadTuningPartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := "springKp: 90\nmaxPickupMass: 50\nkeepUpright: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if tuning.SpringKp != 90 {
		t.Errorf("Expected springKp 90, got %.1f", tuning.SpringKp)
	}
	if tuning.MaxPickupMass != 50 {
		t.Errorf("Expected maxPickupMass 50, got %.1f", tuning.MaxPickupMass)
	}
	if tuning.KeepUpright {
		t.Error("Expected keepUpright false")
	}

	// Untouched fields keep their defaults
	def := DefaultTuning()
	if tuning.ThrowImpulse != def.ThrowImpulse || tuning.MaxForce != def.MaxForce {
		t.Error("Fields absent from the file must keep defaults")
	}
}

func TestLoadTuningMalformedYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("springKp: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err == nil {
		t.Error("Expected a parse error")
	}
	if tuning != DefaultTuning() {
		t.Error("Malformed file should fall back to full defaults")
	}
}

func TestTuningWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")

	tw, err := WatchTuning(path)
	if err != nil {
		t.Fatalf("WatchTuning: %v", err)
	}
	defer tw.Close()

	if _, ok := tw.Poll(); ok {
		t.Error("Poll should be empty before any write")
	}

	if err := os.WriteFile(path, []byte("puntImpulse: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if tuning, ok := tw.Poll(); ok {
			if tuning.PuntImpulse != 99 {
				t.Errorf("Expected reloaded puntImpulse 99, got %.1f", tuning.PuntImpulse)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timed out waiting for the reload")
}
