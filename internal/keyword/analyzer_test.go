package keyword

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/hyperjump/kousei/internal/models"
	"github.com/hyperjump/kousei/internal/textutil"
)

func TestClassifyDensityBands(t *testing.T) {
	tests := []struct {
		density float64
		want    models.StuffingRisk
	}{
		{0.0, models.StuffingUnderOptimized},
		{0.49, models.StuffingUnderOptimized},
		{0.5, models.StuffingLow},
		{0.99, models.StuffingLow},
		{1.0, models.StuffingOptimal},
		{1.99, models.StuffingOptimal},
		{2.0, models.StuffingBorderline},
		{3.0, models.StuffingBorderline},
		{3.01, models.StuffingRiskHigh},
		{8.5, models.StuffingRiskHigh},
	}
	for _, tt := range tests {
		if got := classifyDensity(tt.density); got != tt.want {
			t.Errorf("classifyDensity(%v) = %q, want %q", tt.density, got, tt.want)
		}
	}
}

func TestAnalyzeDensity(t *testing.T) {
	// 98 filler words plus 2 keyword occurrences: exactly 2% density.
	text := strings.Repeat("filler ", 98) + "gopher and gopher"
	structure := textutil.ExtractStructure(text)

	profile := Analyze(text, structure, "gopher", nil, DefaultConfig())
	if profile.WordCount != 101 {
		t.Fatalf("WordCount = %d, want 101", profile.WordCount)
	}
	if profile.Primary.Occurrences != 2 {
		t.Errorf("Occurrences = %d, want 2", profile.Primary.Occurrences)
	}
	if profile.Primary.Density != 1.98 {
		t.Errorf("Density = %v, want 1.98", profile.Primary.Density)
	}
	if profile.StuffingRisk != models.StuffingOptimal {
		t.Errorf("StuffingRisk = %q, want optimal", profile.StuffingRisk)
	}
	if profile.DensityByTerm["gopher"] != profile.Primary.Density {
		t.Errorf("DensityByTerm mismatch: %v", profile.DensityByTerm)
	}
}

func TestAnalyzeMultiWordPhrase(t *testing.T) {
	text := "Email marketing works. Marketing email campaigns differ. Email marketing again."
	structure := textutil.ExtractStructure(text)

	profile := Analyze(text, structure, "email marketing", nil, DefaultConfig())
	if profile.Primary.Occurrences != 2 {
		t.Errorf("Occurrences = %d, want 2 (reversed word order must not count)", profile.Primary.Occurrences)
	}
}

func TestAnalyzePlacements(t *testing.T) {
	text := `# Gopher Deployment Guide

Deploying a gopher service takes three steps that this guide walks through.

## Why gopher deployments fail

Teams skip health checks and ship broken binaries every week regardless.

## Rollout order

Start small, then widen the rollout slowly.

In closing, gopher deployments reward patience and careful rollout order.`
	structure := textutil.ExtractStructure(text)

	profile := Analyze(text, structure, "gopher", nil, DefaultConfig())
	p := profile.Primary.Placements
	if !p.Title {
		t.Error("Title placement: want true")
	}
	if !p.First100Words {
		t.Error("First100Words placement: want true")
	}
	if !p.Heading {
		t.Error("Heading placement: want true")
	}
	if !p.Closing {
		t.Error("Closing placement: want true")
	}

	miss := Analyze(text, structure, "kubernetes", nil, DefaultConfig())
	if got := miss.Primary.Placements; got != (models.Placements{}) {
		t.Errorf("absent keyword placements = %+v, want all false", got)
	}
}

func TestAnalyzeCriticalPlacements(t *testing.T) {
	text := `# Gopher Deployment Guide

Deploying a gopher service takes three steps that this guide walks through.

In closing, gopher deployments reward patience.`
	structure := textutil.ExtractStructure(text)

	profile := Analyze(text, structure, "gopher", nil, DefaultConfig())
	if profile.CriticalPlacements != profile.Primary.Placements {
		t.Errorf("CriticalPlacements = %+v, want %+v", profile.CriticalPlacements, profile.Primary.Placements)
	}

	out, err := json.Marshal(profile)
	if err != nil {
		t.Fatalf("marshal profile: %v", err)
	}
	if !strings.Contains(string(out), `"critical_placements"`) {
		t.Error("profile JSON missing top-level critical_placements key")
	}
}

func TestStuffingWarningsDoNotChangeBand(t *testing.T) {
	// One dense paragraph and three consecutive keyword sentences, but the
	// overall density stays below 0.5%.
	text := "Gopher tools ship. Gopher tools win. Gopher tools last.\n\n" +
		strings.Repeat("Plain filler prose keeps the overall density very low here. ", 60)
	structure := textutil.ExtractStructure(text)

	profile := Analyze(text, structure, "gopher", nil, DefaultConfig())
	if len(profile.StuffingWarnings) == 0 {
		t.Fatal("expected escalator warnings, got none")
	}
	if profile.StuffingRisk != classifyDensity(profile.Primary.Density) {
		t.Errorf("StuffingRisk = %q, want pure band %q for density %v",
			profile.StuffingRisk, classifyDensity(profile.Primary.Density), profile.Primary.Density)
	}
	if profile.StuffingRisk != models.StuffingUnderOptimized {
		t.Errorf("StuffingRisk = %q, want under_optimized despite warnings", profile.StuffingRisk)
	}

	found := false
	for _, w := range profile.StuffingWarnings {
		if strings.Contains(w, "consecutive sentences") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings missing consecutive-sentence escalator: %v", profile.StuffingWarnings)
	}
}

func TestHeatmapPerSection(t *testing.T) {
	text := `Intro paragraph mentions gopher once in a short opening block of words.

## Dense part

Gopher gopher gopher appears often in this short and heavy block.

## Empty part

Nothing relevant appears in this section at all, just ordinary prose.`
	structure := textutil.ExtractStructure(text)

	profile := Analyze(text, structure, "gopher", nil, DefaultConfig())
	if len(profile.Heatmap) != 3 {
		t.Fatalf("heatmap cells = %d, want 3", len(profile.Heatmap))
	}
	if profile.Heatmap[0].Count != 1 {
		t.Errorf("intro count = %d, want 1", profile.Heatmap[0].Count)
	}
	if profile.Heatmap[1].Count != 3 {
		t.Errorf("dense section count = %d, want 3", profile.Heatmap[1].Count)
	}
	if profile.Heatmap[1].Heat != 5 {
		t.Errorf("dense section heat = %d, want 5", profile.Heatmap[1].Heat)
	}
	if profile.Heatmap[2].Count != 0 || profile.Heatmap[2].Heat != 0 {
		t.Errorf("empty section = %+v, want zero count and heat", profile.Heatmap[2])
	}
	if profile.Heatmap[1].Section != "Dense part" {
		t.Errorf("section label = %q, want heading text", profile.Heatmap[1].Section)
	}
}

func TestAnalyzeSecondaryKeywords(t *testing.T) {
	text := "Gopher services need load balancing. Load balancing spreads gopher traffic evenly."
	structure := textutil.ExtractStructure(text)

	profile := Analyze(text, structure, "gopher", []string{"load balancing", "missing term"}, DefaultConfig())
	if len(profile.Secondary) != 2 {
		t.Fatalf("secondary stats = %d, want 2", len(profile.Secondary))
	}
	if profile.Secondary[0].Occurrences != 2 {
		t.Errorf("load balancing occurrences = %d, want 2", profile.Secondary[0].Occurrences)
	}
	if profile.Secondary[1].Occurrences != 0 {
		t.Errorf("missing term occurrences = %d, want 0", profile.Secondary[1].Occurrences)
	}
	if len(profile.DensityByTerm) != 3 {
		t.Errorf("DensityByTerm size = %d, want 3", len(profile.DensityByTerm))
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	text := `# Shipping gopher services

Gopher services need careful shipping plans and staged rollouts to stay healthy.

## Monitoring the fleet

Dashboards track latency, errors, and saturation across every gopher instance.

## Scaling the fleet

Autoscaling policies add instances when traffic grows and remove them at night.

## Paying down debt

Old services accumulate debt that teams pay down during quiet weeks.`
	structure := textutil.ExtractStructure(text)

	first := Analyze(text, structure, "gopher", []string{"fleet"}, DefaultConfig())
	for i := 0; i < 5; i++ {
		if got := Analyze(text, structure, "gopher", []string{"fleet"}, DefaultConfig()); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d differs from first run", i+2)
		}
	}
}
