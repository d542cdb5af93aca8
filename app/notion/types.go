// Defines the subset of Notion API types the sync pipeline exchanges.

package notion

import (
	"errors"
	"fmt"
)

// Hard limits imposed by the Notion API on property and block payloads.
const (
	// MaxTextLength bounds every rich text payload (block text, Body).
	MaxTextLength = 2000
	// MaxTitleLength bounds the Name title property.
	MaxTitleLength = 100
)

// Database property names. These are part of the remote schema contract.
const (
	PropName            = "Name"
	PropContentType     = "Content Type"
	PropDomain          = "Domain"
	PropCertainty       = "Certainty"
	PropSource          = "Source"
	PropConfidenceScore = "Confidence Score"
	PropImpact          = "Impact"
	PropSourceFile      = "Source File"
	PropTags            = "Tags"
	PropBody            = "Body"
)

// RichText is a single rich text run. Requests only ever populate Text;
// PlainText is filled in by API responses.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the plain text payload of a rich text run.
type TextContent struct {
	Content string `json:"content"`
}

// Text wraps content into a one-element rich text array, the shape every
// text-bearing property and block expects.
func Text(content string) []RichText {
	return []RichText{{Text: &TextContent{Content: content}}}
}

// Properties maps property names to values for page create/update requests.
type Properties map[string]PropertyValue

// PropertyValue carries exactly one populated property variant.
type PropertyValue struct {
	Title       []RichText    `json:"title,omitempty"`
	RichText    []RichText    `json:"rich_text,omitempty"`
	Select      *SelectValue  `json:"select,omitempty"`
	MultiSelect []SelectValue `json:"multi_select,omitempty"`
	Number      *float64      `json:"number,omitempty"`
}

// SelectValue names a select or multi-select option.
type SelectValue struct {
	Name string `json:"name"`
}

// TitleProperty builds a title property value.
func TitleProperty(text string) PropertyValue {
	return PropertyValue{Title: Text(text)}
}

// RichTextProperty builds a rich text property value.
func RichTextProperty(text string) PropertyValue {
	return PropertyValue{RichText: Text(text)}
}

// SelectProperty builds a select property value.
func SelectProperty(name string) PropertyValue {
	return PropertyValue{Select: &SelectValue{Name: name}}
}

// MultiSelectProperty builds a multi-select property value.
func MultiSelectProperty(names []string) PropertyValue {
	options := make([]SelectValue, 0, len(names))
	for _, name := range names {
		options = append(options, SelectValue{Name: name})
	}
	return PropertyValue{MultiSelect: options}
}

// NumberProperty builds a number property value.
func NumberProperty(value float64) PropertyValue {
	return PropertyValue{Number: &value}
}

// Block is a content block in a page body. Only the field matching Type is
// populated; the converter emits paragraph, heading_1..3,
// bulleted_list_item, quote, code and divider blocks.
type Block struct {
	Object string `json:"object"`
	Type   string `json:"type"`

	Paragraph        *ParagraphBlock `json:"paragraph,omitempty"`
	Heading1         *HeadingBlock   `json:"heading_1,omitempty"`
	Heading2         *HeadingBlock   `json:"heading_2,omitempty"`
	Heading3         *HeadingBlock   `json:"heading_3,omitempty"`
	BulletedListItem *ListItemBlock  `json:"bulleted_list_item,omitempty"`
	Quote            *QuoteBlock     `json:"quote,omitempty"`
	Code             *CodeBlock      `json:"code,omitempty"`
	Divider          *struct{}       `json:"divider,omitempty"`
}

// ParagraphBlock is a paragraph block payload.
type ParagraphBlock struct {
	RichText []RichText `json:"rich_text"`
}

// HeadingBlock is a heading block payload, shared by all three levels.
type HeadingBlock struct {
	RichText []RichText `json:"rich_text"`
}

// ListItemBlock is a bulleted list item payload.
type ListItemBlock struct {
	RichText []RichText `json:"rich_text"`
}

// QuoteBlock is a quote block payload.
type QuoteBlock struct {
	RichText []RichText `json:"rich_text"`
}

// CodeBlock is a code block payload.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption"`
	Language string     `json:"language"`
}

// NewHeading builds a heading block at level 1, 2 or 3.
func NewHeading(level int, text string) Block {
	heading := &HeadingBlock{RichText: Text(truncateText(text))}
	block := Block{Object: "block"}
	switch level {
	case 1:
		block.Type = "heading_1"
		block.Heading1 = heading
	case 3:
		block.Type = "heading_3"
		block.Heading3 = heading
	default:
		block.Type = "heading_2"
		block.Heading2 = heading
	}
	return block
}

// NewParagraph builds a paragraph block.
func NewParagraph(text string) Block {
	return Block{
		Object:    "block",
		Type:      "paragraph",
		Paragraph: &ParagraphBlock{RichText: Text(truncateText(text))},
	}
}

// NewListItem builds a bulleted list item block.
func NewListItem(text string) Block {
	return Block{
		Object:           "block",
		Type:             "bulleted_list_item",
		BulletedListItem: &ListItemBlock{RichText: Text(truncateText(text))},
	}
}

// NewQuote builds a quote block.
func NewQuote(text string) Block {
	return Block{
		Object: "block",
		Type:   "quote",
		Quote:  &QuoteBlock{RichText: Text(truncateText(text))},
	}
}

// NewCode builds a code block. An empty language maps to "plain text".
func NewCode(code, language string) Block {
	if language == "" {
		language = "plain text"
	}
	return Block{
		Object: "block",
		Type:   "code",
		Code: &CodeBlock{
			RichText: Text(truncateText(code)),
			Caption:  []RichText{},
			Language: language,
		},
	}
}

// NewDivider builds a divider block.
func NewDivider() Block {
	return Block{Object: "block", Type: "divider", Divider: &struct{}{}}
}

// PlainText flattens the block's rich text payload, if any.
func (b Block) PlainText() string {
	var runs []RichText
	switch b.Type {
	case "paragraph":
		runs = b.Paragraph.RichText
	case "heading_1":
		runs = b.Heading1.RichText
	case "heading_2":
		runs = b.Heading2.RichText
	case "heading_3":
		runs = b.Heading3.RichText
	case "bulleted_list_item":
		runs = b.BulletedListItem.RichText
	case "quote":
		runs = b.Quote.RichText
	case "code":
		runs = b.Code.RichText
	default:
		return ""
	}

	text := ""
	for _, run := range runs {
		if run.Text != nil {
			text += run.Text.Content
		}
	}
	return text
}

// truncateText enforces the MaxTextLength bound, counting characters the
// way the API does rather than bytes.
func truncateText(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTextLength {
		return text
	}
	return string(runes[:MaxTextLength])
}

// Page is the slice of a page response the pipeline needs.
type Page struct {
	Object string `json:"object"`
	ID     string `json:"id"`
}

// QueryResponse is the paginated response of a database query.
type QueryResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// Error is the structured error body the API returns on failure.
type Error struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("notion API error %s (status %d): %s", e.Code, e.Status, e.Message)
}

// IsNotFound reports whether err is the API telling us the referenced
// object no longer exists.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == "object_not_found" || apiErr.Status == 404
}
