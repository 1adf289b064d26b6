package retrieval

import (
	"regexp"
	"strings"
)

var nonWordSplitter = regexp.MustCompile(`\W+`)

// stopWords are dropped from extracted query keywords.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"has": true, "was": true, "one": true, "our": true, "out": true,
	"get": true, "how": true, "its": true, "new": true, "now": true,
	"see": true, "two": true, "way": true, "who": true, "did": true,
	"use": true, "what": true, "when": true, "where": true, "which": true,
	"with": true, "this": true, "that": true, "from": true, "have": true,
	"will": true, "your": true, "about": true, "does": true, "show": true,
	"find": true, "into": true, "some": true, "them": true, "then": true,
	"they": true, "there": true, "their": true, "been": true, "being": true,
	"explain": true, "please": true,
}

// domainVocabulary terms are unioned into the keyword set whenever they
// appear as a substring of the query, even when token splitting would have
// lost them.
var domainVocabulary = []string{
	"service", "controller", "handler", "router", "route", "middleware",
	"model", "entity", "schema", "repository", "store", "database",
	"config", "settings", "env",
	"auth", "login", "session", "token", "security", "guard",
	"error", "exception", "validation",
	"api", "endpoint", "request", "response",
	"test", "spec", "mock",
	"util", "helper", "logger", "cache", "component", "view", "migration",
	"user", "payment", "email",
}

// ExtractKeywords lowercases the query, splits it on non-word boundaries,
// drops stop words and short tokens, and unions in every domain term that
// occurs as a substring of the query.
func ExtractKeywords(query string) []string {
	lower := strings.ToLower(query)

	seen := make(map[string]bool)
	keywords := []string{}

	for _, token := range nonWordSplitter.Split(lower, -1) {
		if len(token) <= 2 || stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}

	for _, term := range domainVocabulary {
		if !seen[term] && strings.Contains(lower, term) {
			seen[term] = true
			keywords = append(keywords, term)
		}
	}

	return keywords
}
