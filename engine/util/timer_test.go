package util

import "testing"

func TestTimerRecordsPhases(t *testing.T) {
	timer := NewTimer()
	for i := 0; i < 3; i++ {
		stop := timer.Start("generate")
		stop()
	}
	timer.Start("mesh")()
	gen, ok := timer.Phase("generate")
	if !ok || gen.Count != 3 {
		t.Fatalf("expected 3 generate samples, got %+v", gen)
	}
	if gen.Min > gen.Max {
		t.Fatalf("min %s > max %s", gen.Min, gen.Max)
	}
	phases := timer.Phases()
	if len(phases) != 2 || phases[0].Name != "generate" || phases[1].Name != "mesh" {
		t.Fatalf("unexpected phases %+v", phases)
	}
	timer.Reset()
	if _, ok := timer.Phase("mesh"); ok {
		t.Fatalf("reset should drop phases")
	}
}

func TestParseLogSettings(t *testing.T) {
	if lvl, err := ParseLogLevel("debug"); err != nil || lvl != LogLevelDebug {
		t.Fatalf("ParseLogLevel(debug) = %v, %v", lvl, err)
	}
	if _, err := ParseLogLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	cats, err := ParseLogCategories([]string{"stream", "Mesh"})
	if err != nil || cats != LogStream|LogMesh {
		t.Fatalf("ParseLogCategories = %v, %v", cats, err)
	}
	if _, err := ParseLogCategories([]string{"network"}); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}
