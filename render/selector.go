package render

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Sections names the parts of a rendered profile that can be selected on
// their own.
var Sections = map[string]string{
	"identity":  ".identity",
	"employers": ".employers",
	"videos":    ".videos",
}

// Select returns the concatenated outer HTML of the elements in fragment
// matching selector. When nothing matches, the result is empty.
func Select(fragment, selector string) (string, error) {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, node := range cascadia.QueryAll(doc, sel) {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
