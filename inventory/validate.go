package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/veo1/inventory-catalog/models"
)

// Input holds the raw, untrusted field values of a create or update request.
type Input map[string]string

// Input field names.
const (
	FieldName          = "name"
	FieldTitle         = "title"
	FieldCategory      = "category"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldNumberInStock = "numberInStock"
)

// Violation is a failed field rule.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value"`
}

// ValidationError is returned when an input breaks one or more field rules.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Decimal integer without leading zeros, optionally signed.
var intPattern = regexp.MustCompile(`^[-+]?(?:0|[1-9][0-9]*)$`)

type checker struct {
	in         Input
	violations []Violation
}

func (c *checker) fail(field, message, value string) {
	c.violations = append(c.violations, Violation{Field: field, Message: message, Value: value})
}

// text trims the field, checks its length and returns it escaped.
func (c *checker) text(field string, minLen int, message string) string {
	value := strings.TrimSpace(c.in[field])
	escaped := escaper.Replace(value)
	if utf16Len(value) < minLen {
		c.fail(field, message, escaped)
	}
	return escaped
}

// utf16Len counts UTF-16 code units, so characters outside the BMP count twice.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// count trims the field and parses it as an integer of at least 1.
// A parseable value is kept even when it is out of range. Values beyond int64
// are rejected since no store can hold them.
func (c *checker) count(field, message string) int64 {
	value := strings.TrimSpace(c.in[field])
	n, err := strconv.ParseInt(value, 10, 64)
	if !intPattern.MatchString(value) || err != nil {
		c.fail(field, message, escaper.Replace(value))
		return 0
	}
	if n < 1 {
		c.fail(field, message, value)
	}
	return n
}

// ValidateCategory normalizes in into a category draft.
// The draft is only safe to store when no violations are returned.
func ValidateCategory(in Input) (models.Category, []Violation) {
	c := &checker{in: in}
	draft := models.Category{
		Name:        c.text(FieldName, 3, "name must contain at least 3 characters"),
		Description: c.text(FieldDescription, 3, "description field is required"),
	}
	return draft, c.violations
}

// ValidateItem normalizes in into an item draft.
// The draft is only safe to store when no violations are returned.
func ValidateItem(in Input) (models.Item, []Violation) {
	c := &checker{in: in}
	draft := models.Item{
		Title:         c.text(FieldTitle, 1, "title field is required"),
		CategoryID:    c.text(FieldCategory, 1, "category must be specified"),
		Description:   c.text(FieldDescription, 1, "description field is required"),
		Price:         c.count(FieldPrice, "price field is required and must be a number greater than 0"),
		NumberInStock: c.count(FieldNumberInStock, "number in stock field is required and must be a whole number greater than 0"),
	}
	return draft, c.violations
}
