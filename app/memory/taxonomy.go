package memory

// Rule pairs a label with the keywords that select it. Rules are evaluated
// in slice order and the first match wins, so the tables below are ordered
// lists rather than maps.
type Rule struct {
	Label    string
	Keywords []string
}

// Taxonomies bundles the keyword rule tables used by the Classifier. The
// zero value classifies everything to the defaults; use DefaultTaxonomies
// for the built-in rules.
type Taxonomies struct {
	ContentTypes []Rule
	Domains      []Rule
	Certainties  []Rule
	Impacts      []Rule
	Tags         []Rule
}

// Defaults returned when no rule in the corresponding table matches.
const (
	DefaultContentType = "Insight"
	DefaultDomain      = "General"
	DefaultCertainty   = "Verified"
	DefaultImpact      = "Medium"
)

// MaxTags caps the tag set per entry; the remote multi-select rejects more.
const MaxTags = 7

// evidenceKeywords raise the confidence score when present in the body.
var evidenceKeywords = []string{"data", "benchmark", "measured", "tested"}

// DefaultTaxonomies returns the built-in classification rule tables.
func DefaultTaxonomies() Taxonomies {
	return Taxonomies{
		ContentTypes: []Rule{
			{"Research", []string{"research", "benchmark", "analysis", "comparison", "technical deep dive", "performance", "detailed breakdown"}},
			{"Lesson", []string{"lesson", "learned", "mistake", "error", "issue", "problem", "fixed", "resolved", "blocker"}},
			{"Decision", []string{"decision", "choose", "selected", "opted", "concluded", "determined", "agreed", "strategy"}},
			{"Pattern", []string{"pattern", "trend", "recurring", "common", "usually", "typically", "observation"}},
			{"Tutorial", []string{"how to", "tutorial", "guide", "step", "instruction", "walkthrough", "setup", "configure"}},
			{"Reference", []string{"reference", "cheatsheet", "spec", "specification", "documentation", "api", "quick reference"}},
			{"Insight", []string{"insight", "realized", "noticed", "observed", "thought", "idea", "aha", "epiphany"}},
		},
		Domains: []Rule{
			{"AI Models", []string{"model", "llm", "gpt", "claude", "gemini", "stepflash", "deepseek", "mimo", "devstral", "openrouter", "free tier", "notion"}},
			{"Agents", []string{"agent", "workflow", "skill", "tool", "automation", "sync", "database"}},
			{"Cost Optimization", []string{"cost", "price", "$", "budget", "free", "tier", "routing", "saving", "optimization", "value"}},
			{"Trading", []string{"trading", "invest", "stock", "crypto", "nft", "web3", "defi", "bitcoin", "ethereum"}},
			{"Learning", []string{"learn", "study", "japanese", "language", "course", "tutorial", "duolingo"}},
			{"Process", []string{"process", "workflow", "method", "procedure", "system", "framework"}},
		},
		Certainties: []Rule{
			{"Verified", []string{"proven", "confirmed", "tested", "verified", "measured", "data shows", "benchmark result"}},
			{"Likely", []string{"likely", "probably", "most likely", "seems", "appears", "suggest"}},
			{"Speculative", []string{"maybe", "might", "could", "possibly", "hypothesis", "guess", "uncertain"}},
			{"Opinion", []string{"i think", "believe", "feel", "in my view", "personally", "prefer"}},
		},
		Impacts: []Rule{
			{"High", []string{"critical", "important", "must", "essential", "key", "major", "significant", "game changer"}},
			{"Medium", []string{"relevant", "useful", "helpful", "worth", "good", "beneficial"}},
			{"Low", []string{"minor", "small", "slight", "marginal", "nice to have"}},
			{"Negligible", []string{"negligible", "tiny", "minimal", "barely", "insignificant"}},
		},
		Tags: []Rule{
			{"AI", []string{"ai", "artificial intelligence", "ml", "machine learning", "model"}},
			{"OpenRouter", []string{"openrouter", "router", "provider", "stepfun", "moonshot", "xiaomi", "mistral"}},
			{"FreeTier", []string{"free", "free tier", "no cost"}},
			{"Benchmark", []string{"benchmark", "test", "score", "performance", "swe-bench", "aime"}},
			{"Cost", []string{"cost", "price", "$", "pricing", "budget", "optimization"}},
			{"Automation", []string{"automation", "auto", "script", "workflow", "agent", "tool"}},
			{"Coding", []string{"code", "programming", "development", "swe", "coding"}},
			{"Notion", []string{"notion", "database", "knowledge base", "sync"}},
			{"Decision", []string{"decision", "choose", "selected", "strategy"}},
		},
	}
}
