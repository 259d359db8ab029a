package crawler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"storescrape/pkg/utils"
)

// ErrElementMissing is returned when a nested element needed for text is absent.
var ErrElementMissing = errors.New("element not found")

// Rule selects elements by tag and class.
type Rule struct {
	Tag   string
	Class string
}

// Selector returns the CSS selector for the rule, e.g. "div.shop".
func (r Rule) Selector() string {
	if r.Class == "" {
		return r.Tag
	}

	return r.Tag + "." + r.Class
}

// String implements fmt.Stringer.
func (r Rule) String() string {
	return r.Selector()
}

// ParseHTML parses an HTML page.
func ParseHTML(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return doc, nil
}

// SelectAll returns every element under root matching rule, in document order.
func SelectAll(root *goquery.Selection, rule Rule) []*goquery.Selection {
	found := root.Find(rule.Selector())
	out := make([]*goquery.Selection, 0, found.Length())

	found.Each(func(_ int, el *goquery.Selection) {
		out = append(out, el)
	})

	return out
}

// Text returns the whitespace-normalized text of the first element under el
// matching rule, or ErrElementMissing.
func Text(el *goquery.Selection, rule Rule) (string, error) {
	found := el.Find(rule.Selector()).First()
	if found.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrElementMissing, rule)
	}

	return utils.NormalizeWhitespace(found.Text()), nil
}
