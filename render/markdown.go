package render

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
)

// mdConverter is goroutine-safe and reused for every call.
//
// The base plugin drops iframes, so each video card also carries a plain
// link to its source; that link is what survives in Markdown.
var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
	),
)

// Markdown renders v as Markdown. domain, when set, resolves relative
// links such as the placeholder image into absolute URLs.
func Markdown(v *View, domain string) (string, error) {
	fragment, err := HTML(v)
	if err != nil {
		return "", err
	}
	return FragmentMarkdown(fragment, domain)
}

// FragmentMarkdown converts an already rendered HTML fragment to Markdown.
func FragmentMarkdown(fragment, domain string) (string, error) {
	if fragment == "" {
		return "", nil
	}
	var (
		md  string
		err error
	)
	if domain != "" {
		md, err = mdConverter.ConvertString(fragment, converter.WithDomain(domain))
	} else {
		md, err = mdConverter.ConvertString(fragment)
	}
	if err != nil {
		return "", fmt.Errorf("render: markdown: %w", err)
	}
	return md, nil
}
