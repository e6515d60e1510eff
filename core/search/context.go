package search

import (
	"fmt"
	"strings"

	"groundsearch-api/core/domain"
	"groundsearch-api/core/reader"
)

// FormatContext renders a bundle as a text block for a language model prompt.
// Condensed mode cuts page bodies to reader.CondensedBodyLength.
func FormatContext(bundle domain.RankedBundle, condensed bool) string {
	var b strings.Builder

	if len(bundle.Results) > 0 {
		fmt.Fprintf(&b, "Web search results for %q:\n", bundle.Query)
		for i, r := range bundle.Results {
			if r.URL != "" {
				fmt.Fprintf(&b, "%d. [%s](%s)\n", i+1, r.Title, r.URL)
			} else {
				fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
			}
			if r.Snippet != "" {
				b.WriteString(r.Snippet)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	limit := reader.MaxBodyLength
	if condensed {
		limit = reader.CondensedBodyLength
	}
	for _, page := range bundle.Pages {
		fmt.Fprintf(&b, "Page content: [%s](%s)\n", page.Title, page.URL)
		b.WriteString(reader.Truncate(page.Content, limit))
		b.WriteString("\n\n")
	}

	return strings.TrimSpace(b.String())
}
