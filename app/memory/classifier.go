package memory

import (
	"strings"
	"unicode/utf8"
)

// Classifier assigns metadata to entries by evaluating keyword rule tables.
// Classification is heuristic and deterministic: the same entry always
// yields the same metadata.
type Classifier struct {
	taxonomies Taxonomies
}

func NewClassifier(taxonomies Taxonomies) *Classifier {
	return &Classifier{taxonomies: taxonomies}
}

// Run classifies a single entry.
func (c *Classifier) Run(entry Entry) Metadata {
	titleBody := strings.ToLower(entry.Title + " " + entry.Body)
	body := strings.ToLower(entry.Body)

	return Metadata{
		ContentType:     classify(c.taxonomies.ContentTypes, titleBody, DefaultContentType),
		Domain:          classify(c.taxonomies.Domains, titleBody, DefaultDomain),
		Certainty:       classify(c.taxonomies.Certainties, body, DefaultCertainty),
		Impact:          classify(c.taxonomies.Impacts, titleBody, DefaultImpact),
		ConfidenceScore: confidenceScore(entry),
		Tags:            c.extractTags(entry),
		Source:          entry.Source,
	}
}

// classify returns the label of the first rule with a keyword match, or the
// fallback when nothing matches. Rule order is significant.
func classify(rules []Rule, text, fallback string) string {
	for _, rule := range rules {
		if matchAny(text, rule.Keywords) {
			return rule.Label
		}
	}
	return fallback
}

// extractTags is multiplicative rather than first-match: every matching tag
// rule contributes. Tags are appended in rule-definition order and capped at
// MaxTags, which makes the surviving subset deterministic.
func (c *Classifier) extractTags(entry Entry) []string {
	text := strings.ToLower(entry.Title + " " + entry.Body + " " + entry.Section)

	var tags []string
	seen := make(map[string]bool)
	for _, rule := range c.taxonomies.Tags {
		if !matchAny(text, rule.Keywords) {
			continue
		}
		if seen[rule.Label] {
			continue
		}
		seen[rule.Label] = true
		tags = append(tags, rule.Label)
		if len(tags) == MaxTags {
			break
		}
	}

	return tags
}

// confidenceScore starts from a base of 7 and rewards aggregate provenance,
// substantial bodies and evidentiary language, clamped to [1, 10].
func confidenceScore(entry Entry) int {
	score := 7
	if entry.Source == SourceAggregate {
		score++
	}
	if utf8.RuneCountInString(entry.Body) > 500 {
		score++
	}
	if matchAny(strings.ToLower(entry.Body), evidenceKeywords) {
		score++
	}

	return min(10, max(1, score))
}

func matchAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
