// ABOUTME: Request DTOs for the search API endpoints
// ABOUTME: Huma validates the struct tags before handlers run

package requests

// SearchRequest asks for a ranked bundle for one query
type SearchRequest struct {
	Query string `json:"query" minLength:"1" maxLength:"500" example:"golang generics tutorial" doc:"Search query"`
}

// FetchRequest asks for the readable body of one page
type FetchRequest struct {
	URL string `json:"url" minLength:"1" maxLength:"2048" example:"https://go.dev/doc/tutorial/generics" doc:"Absolute http(s) URL of the page"`
}

// GroundRequest asks for search grounding of a chat message
type GroundRequest struct {
	Message   string `json:"message" minLength:"1" maxLength:"4000" doc:"User message to analyse"`
	Condensed bool   `json:"condensed,omitempty" doc:"Truncate page bodies to a shorter length in the context block"`
}

// ExtractQueryRequest asks only for the derived query of a message
type ExtractQueryRequest struct {
	Message string `json:"message" minLength:"1" maxLength:"4000" doc:"User message to analyse"`
}
