package model

// Example is a few-shot pair shown to the language model when translating
// a question into a graph query.
type Example struct {
	Question string `json:"question" toml:"question"`
	Query    string `json:"query" toml:"query"`
}
