package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groundsearch-api/core/domain"
)

func TestPatterns(t *testing.T) {
	body := "Go Generics Tutorial - https://go.dev/doc/tutorial/generics\n" +
		"Generics in Go\n" +
		"https://example.com/generics-in-go\n" +
		"A deep dive into type parameters.\n"
	in := domain.ParseInput{Query: "go generics", Body: []byte(body)}

	got := Patterns().Attempt(in)

	require.GreaterOrEqual(t, len(got), 2)
	assert.Equal(t, "Go Generics Tutorial", got[0].Title)
	assert.Equal(t, "https://go.dev/doc/tutorial/generics", got[0].URL)
	assert.Equal(t, "Generics in Go", got[1].Title)
	assert.Equal(t, "https://example.com/generics-in-go", got[1].URL)
	assert.Equal(t, "A deep dive into type parameters.", got[1].Snippet)
}

func TestPatterns_ParagraphsRankedByKeywordOverlap(t *testing.T) {
	body := "Unrelated cooking notes at https://food.example.com/soup\n\n" +
		"Bitcoin news roundup\nThe bitcoin price moved today https://coins.example.com/price\n\n" +
		"Bitcoin primer https://coins.example.com/primer"
	in := domain.ParseInput{Query: "bitcoin price", Body: []byte(body)}

	got := paragraphCandidates(body, []string{"bitcoin", "price"}, in)

	require.Len(t, got, 2, "paragraph without keyword overlap is skipped")
	assert.Equal(t, "https://coins.example.com/price", got[0].URL)
	assert.Equal(t, "Bitcoin news roundup", got[0].Title)
	assert.Equal(t, "https://coins.example.com/primer", got[1].URL)
}

func TestMarkupLinks(t *testing.T) {
	body := `<html><body><div>Intro text about generics. <a href="https://go.dev/blog/intro-generics">An Introduction To Generics</a> from the Go blog.</div>` +
		`<a href="/settings">Settings</a><a href="https://www.example-search.com/preferences">Preferences</a>` +
		"\nSee [Go generics FAQ](https://go.dev/doc/faq#generics) for details.</body></html>"
	in := domain.ParseInput{RequestURL: "https://www.example-search.com/search?q=generics", Body: []byte(body)}

	got := MarkupLinks().Attempt(in)

	require.Len(t, got, 2, "links back to the search host are skipped")
	assert.Equal(t, "An Introduction To Generics", got[0].Title)
	assert.Equal(t, "https://go.dev/blog/intro-generics", got[0].URL)
	assert.Contains(t, got[0].Snippet, "Intro text about generics")
	assert.Equal(t, "Go generics FAQ", got[1].Title)
	assert.Equal(t, "https://go.dev/doc/faq#generics", got[1].URL)
}

func TestAggressive(t *testing.T) {
	body := "Useful references\n" +
		"see golang.org/doc and www.example.org/page\n" +
		"contact admin@example.com\n"
	in := domain.ParseInput{Body: []byte(body)}

	got := Aggressive().Attempt(in)

	require.Len(t, got, 2)
	assert.Equal(t, "https://golang.org/doc", got[0].URL)
	assert.Equal(t, "Useful references", got[0].Title)
	assert.Equal(t, "https://www.example.org/page", got[1].URL)
}
