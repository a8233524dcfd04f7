package main

import (
	"flag"
	"io"
	"testing"

	"github.com/esimov/lowpoly"
	"github.com/esimov/lowpoly/journal"
)

func configFlags(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	fs := flag.NewFlagSet("lowpoly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Int("segments", 35, "")
	fs.Int("generations", 20, "")
	fs.Float64("rate", 0.6, "")
	fs.Float64("deviation", 10, "")
	fs.Int64("seed", 0, "")
	fs.String("seeding", "grid", "")
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs
}

func journaledRun() *journal.Run {
	cfg := lowpoly.DefaultConfig()
	cfg.Segments = 10
	cfg.MutationRate = 0.4
	cfg.MutationDeviation = 4
	return &journal.Run{ID: "run", Width: 64, Height: 48, Config: cfg}
}

func TestResumeConfigKeepsJournaledSettings(t *testing.T) {
	cfg, err := resumeConfig(configFlags(t), journaledRun(), 64, 48)
	if err != nil {
		t.Fatalf("resume config: %v", err)
	}
	if cfg.Segments != 10 || cfg.MutationRate != 0.4 || cfg.MutationDeviation != 4 {
		t.Errorf("journaled settings lost: %+v", cfg)
	}
}

func TestResumeConfigAppliesExplicitFlags(t *testing.T) {
	fs := configFlags(t, "-generations", "40", "-seed", "9", "-seeding", "edges")
	cfg, err := resumeConfig(fs, journaledRun(), 64, 48)
	if err != nil {
		t.Fatalf("resume config: %v", err)
	}
	if cfg.Generations != 40 || cfg.Seed != 9 || cfg.Seeding != lowpoly.SeedEdges {
		t.Errorf("explicit flags not applied: %+v", cfg)
	}
	// Flags left at their defaults do not override the run.
	if cfg.Segments != 10 || cfg.MutationRate != 0.4 {
		t.Errorf("unset flags overrode the run: %+v", cfg)
	}
}

func TestResumeConfigDimensionMismatch(t *testing.T) {
	if _, err := resumeConfig(configFlags(t), journaledRun(), 64, 64); err == nil {
		t.Error("expected an error for a source of another size")
	}
}

func TestResumeConfigInvalidFlag(t *testing.T) {
	if _, err := resumeConfig(configFlags(t, "-segments", "1"), journaledRun(), 64, 48); err == nil {
		t.Error("expected the merged configuration to be validated")
	}
}

func TestNormalizeExt(t *testing.T) {
	for in, want := range map[string]string{"png": ".png", ".JPG": ".jpg", ".tiff": ".tiff"} {
		if got := normalizeExt(in); got != want {
			t.Errorf("normalizeExt(%q) = %q, want %q", in, got, want)
		}
	}
}
