// Converts markdown-style body text into Notion content blocks.

package notion

import (
	"regexp"
	"strings"
)

var orderedItemRe = regexp.MustCompile(`^\d+\. `)

// Converter lexically converts body text into an ordered block sequence.
// Lines are matched against the block rules in priority order; list runs,
// code fences and tables consume lookahead lines as a unit.
type Converter struct{}

func NewConverter() *Converter {
	return &Converter{}
}

// Run converts text into blocks. Text payloads are truncated to
// MaxTextLength by the block constructors.
func (c *Converter) Run(text string) []Block {
	var blocks []Block
	lines := strings.Split(text, "\n")

	for i := 0; i < len(lines); {
		line := strings.TrimRight(lines[i], " \t")

		switch {
		case strings.TrimSpace(line) == "":
			i++

		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, NewHeading(1, line[2:]))
			i++

		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, NewHeading(2, line[3:]))
			i++

		case strings.HasPrefix(line, "### "):
			blocks = append(blocks, NewHeading(3, line[4:]))
			i++

		case isUnorderedItem(line):
			var run []Block
			run, i = c.parseListRun(lines, i, isUnorderedItem, stripUnorderedPrefix)
			blocks = append(blocks, run...)

		case isOrderedItem(line):
			var run []Block
			run, i = c.parseListRun(lines, i, isOrderedItem, stripOrderedPrefix)
			blocks = append(blocks, run...)

		case strings.HasPrefix(line, "> "):
			blocks = append(blocks, NewQuote(line[2:]))
			i++

		case strings.HasPrefix(line, "```"):
			var block Block
			block, i = c.parseCodeFence(lines, i)
			blocks = append(blocks, block)

		case isDivider(line):
			blocks = append(blocks, NewDivider())
			i++

		case strings.Count(line, "|") >= 3:
			var block Block
			block, i = c.parseTable(lines, i, line)
			blocks = append(blocks, block)

		default:
			blocks = append(blocks, NewParagraph(line))
			i++
		}
	}

	return blocks
}

// parseListRun consumes the contiguous run of lines matching the list
// predicate. A blank line ends the run.
func (c *Converter) parseListRun(lines []string, start int, match func(string) bool, strip func(string) string) ([]Block, int) {
	var blocks []Block

	i := start
	for i < len(lines) {
		line := strings.TrimRight(lines[i], " \t")
		if !match(line) {
			break
		}
		blocks = append(blocks, NewListItem(strings.TrimSpace(strip(line))))
		i++
	}

	return blocks, i
}

// parseCodeFence consumes lines up to the closing fence, attaching the
// language token from the opening fence. An unterminated fence runs to the
// end of input.
func (c *Converter) parseCodeFence(lines []string, start int) (Block, int) {
	language := strings.TrimSpace(strings.TrimPrefix(lines[start], "```"))

	var code []string
	i := start + 1
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "```" {
			i++
			break
		}
		code = append(code, strings.TrimRight(lines[i], " \t"))
		i++
	}

	return NewCode(strings.Join(code, "\n"), language), i
}

// parseTable consumes the pipe-table starting at firstLine plus every
// following line containing a pipe. Tables are not parsed into cells, only
// fenced off as a code block so they render faithfully.
func (c *Converter) parseTable(lines []string, start int, firstLine string) (Block, int) {
	table := firstLine
	i := start + 1
	for i < len(lines) && strings.Contains(lines[i], "|") {
		table += "\n" + lines[i]
		i++
	}

	return NewCode(table, "markdown-table"), i
}

func isUnorderedItem(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

func stripUnorderedPrefix(line string) string {
	return line[2:]
}

func isOrderedItem(line string) bool {
	return orderedItemRe.MatchString(line)
}

func stripOrderedPrefix(line string) string {
	return orderedItemRe.ReplaceAllString(line, "")
}

func isDivider(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "---" || trimmed == "***" || trimmed == "___"
}
