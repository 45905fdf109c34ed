// Package tokenizer splits document and query text into terms. Terms are
// whitespace-delimited and kept verbatim: no case folding, stemming or
// stop-word removal.
package tokenizer

import "strings"

// Token represents a single term and its position in the original text.
type Token struct {
	Term     string
	Position int
}

// Tokenize breaks text into Tokens on runs of whitespace.
func Tokenize(text string) []Token {
	words := strings.Fields(text)
	tokens := make([]Token, 0, len(words))
	for pos, word := range words {
		tokens = append(tokens, Token{
			Term:     word,
			Position: pos,
		})
	}
	return tokens
}

// Terms returns only the term strings of Tokenize(text), in order.
func Terms(text string) []string {
	return strings.Fields(text)
}
