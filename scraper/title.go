package scraper

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/kbukum/mp/util"
)

// ExtractTitle returns the text of the first <title> element, or "" when
// the document has none. Whitespace is collapsed.
func ExtractTitle(doc []byte) string {
	z := html.NewTokenizer(bytes.NewReader(doc))
	inTitle := false
	var sb strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			return util.SanitizeString(util.CollapseWhitespace(sb.String()))
		case html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "title" {
				inTitle = true
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inTitle && string(name) == "title" {
				return util.SanitizeString(util.CollapseWhitespace(sb.String()))
			}
		case html.TextToken:
			if inTitle {
				sb.Write(z.Text())
			}
		}
	}
}
