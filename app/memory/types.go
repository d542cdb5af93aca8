package memory

// Source identifies which document shape an entry came from. The literal
// values are what gets written to the remote "Source" select property.
type Source string

const (
	SourceAggregate Source = "MEMORY.md"
	SourceDaily     Source = "daily"
)

// Entry is one extracted unit of knowledge: a level-3 heading and the body
// text accumulated beneath it.
type Entry struct {
	Title   string
	Body    string
	Source  Source
	File    string
	Date    string // YYYY-MM-DD for daily entries, empty for aggregate
	Section string
}

// Metadata holds the classification labels assigned to an entry. Produced
// once by the Classifier and never mutated afterwards.
type Metadata struct {
	ContentType     string
	Domain          string
	Certainty       string
	Impact          string
	ConfidenceScore int
	Tags            []string
	Source          Source
}
