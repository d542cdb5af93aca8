package memory

import (
	"strings"
	"testing"
)

func TestClassifier_Run_Defaults(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomies())

	meta := classifier.Run(Entry{
		Title:  "Quiet morning",
		Body:   "Nothing much happened.",
		Source: SourceDaily,
	})

	if meta.ContentType != DefaultContentType {
		t.Errorf("Expected content type '%s', got '%s'", DefaultContentType, meta.ContentType)
	}
	if meta.Domain != DefaultDomain {
		t.Errorf("Expected domain '%s', got '%s'", DefaultDomain, meta.Domain)
	}
	if meta.Certainty != DefaultCertainty {
		t.Errorf("Expected certainty '%s', got '%s'", DefaultCertainty, meta.Certainty)
	}
	if meta.Impact != DefaultImpact {
		t.Errorf("Expected impact '%s', got '%s'", DefaultImpact, meta.Impact)
	}
	if meta.ConfidenceScore != 7 {
		t.Errorf("Expected base confidence 7, got %d", meta.ConfidenceScore)
	}
	if len(meta.Tags) != 0 {
		t.Errorf("Expected no tags, got %v", meta.Tags)
	}
	if meta.Source != SourceDaily {
		t.Errorf("Expected source '%s', got '%s'", SourceDaily, meta.Source)
	}
}

func TestClassifier_Run_FirstMatchingRuleWins(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomies())

	// Matches both the Research and Lesson rules; Research is listed first.
	meta := classifier.Run(Entry{
		Title: "Lesson from the benchmark research",
		Body:  "A mistake in the setup skewed early results.",
	})

	if meta.ContentType != "Research" {
		t.Errorf("Expected content type 'Research', got '%s'", meta.ContentType)
	}
}

func TestClassifier_Run_CertaintyUsesBodyOnly(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomies())

	// "Proven" in the title must not count; the body says speculative.
	meta := classifier.Run(Entry{
		Title: "Proven approach",
		Body:  "Maybe this holds up under load, maybe not.",
	})

	if meta.Certainty != "Speculative" {
		t.Errorf("Expected certainty 'Speculative', got '%s'", meta.Certainty)
	}
}

func TestClassifier_Run_ConfidenceScoring(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomies())

	base := classifier.Run(Entry{Title: "Quiet morning", Body: "Nothing much happened.", Source: SourceDaily})
	if base.ConfidenceScore != 7 {
		t.Errorf("Expected base score 7, got %d", base.ConfidenceScore)
	}

	aggregate := classifier.Run(Entry{Title: "Quiet morning", Body: "Nothing much happened.", Source: SourceAggregate})
	if aggregate.ConfidenceScore != 8 {
		t.Errorf("Expected aggregate score 8, got %d", aggregate.ConfidenceScore)
	}

	evidence := classifier.Run(Entry{Title: "Quiet morning", Body: "The run was measured twice.", Source: SourceDaily})
	if evidence.ConfidenceScore != 8 {
		t.Errorf("Expected evidence score 8, got %d", evidence.ConfidenceScore)
	}

	long := classifier.Run(Entry{
		Title:  "Quiet morning",
		Body:   strings.Repeat("Nothing much happened. ", 25),
		Source: SourceDaily,
	})
	if long.ConfidenceScore != 8 {
		t.Errorf("Expected long-body score 8, got %d", long.ConfidenceScore)
	}

	// All three bonuses together are clamped to 10.
	maxed := classifier.Run(Entry{
		Title:  "Quiet morning",
		Body:   strings.Repeat("The run was measured twice. ", 25),
		Source: SourceAggregate,
	})
	if maxed.ConfidenceScore != 10 {
		t.Errorf("Expected maximum score 10, got %d", maxed.ConfidenceScore)
	}
}

func TestClassifier_Run_TagsCappedInRuleOrder(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomies())

	// Matches nine tag rules; only the first seven in rule order survive.
	meta := classifier.Run(Entry{
		Title: "Free openrouter model benchmark",
		Body:  "Cost of the automation: the sync code hits the notion database after every decision.",
	})

	expected := []string{"AI", "OpenRouter", "FreeTier", "Benchmark", "Cost", "Automation", "Coding"}
	if len(meta.Tags) != len(expected) {
		t.Fatalf("Expected %d tags, got %d: %v", len(expected), len(meta.Tags), meta.Tags)
	}
	for i, tag := range expected {
		if meta.Tags[i] != tag {
			t.Errorf("Expected tag %d to be '%s', got '%s'", i, tag, meta.Tags[i])
		}
	}
}

func TestClassifier_Run_TagsIncludeSectionText(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomies())

	meta := classifier.Run(Entry{
		Title:   "Latency numbers",
		Body:    "p99 held steady.",
		Section: "Benchmark Results",
	})

	if len(meta.Tags) != 1 || meta.Tags[0] != "Benchmark" {
		t.Errorf("Expected tags [Benchmark] from the section title, got %v", meta.Tags)
	}
}

func TestClassifier_Run_Deterministic(t *testing.T) {
	classifier := NewClassifier(DefaultTaxonomies())
	entry := Entry{
		Title:  "Free openrouter model benchmark",
		Body:   "Cost of the automation: measured across the notion sync workflow.",
		Source: SourceAggregate,
	}

	first := classifier.Run(entry)
	for i := 0; i < 5; i++ {
		again := classifier.Run(entry)
		if again.ContentType != first.ContentType || again.Domain != first.Domain ||
			again.Certainty != first.Certainty || again.Impact != first.Impact ||
			again.ConfidenceScore != first.ConfidenceScore {
			t.Fatalf("Expected identical metadata on repeat runs, got %+v vs %+v", again, first)
		}
		if len(again.Tags) != len(first.Tags) {
			t.Fatalf("Expected identical tags on repeat runs, got %v vs %v", again.Tags, first.Tags)
		}
		for j := range again.Tags {
			if again.Tags[j] != first.Tags[j] {
				t.Fatalf("Expected identical tag order on repeat runs, got %v vs %v", again.Tags, first.Tags)
			}
		}
	}
}
