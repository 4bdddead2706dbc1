// Package assistant implements the rule-based pharmacy chat assistant.
package assistant

import (
	"slices"
	"strings"

	"farmafacil/internal/model"

	"golang.org/x/text/unicode/norm"
)

// Response is the assistant's answer to one message.
type Response struct {
	Text     string
	Products []model.Product
	Rule     string
}

// Responder picks a reply by first-match over an ordered rule list.
// It is safe for concurrent use; rules are never modified after construction.
type Responder struct {
	rules        []Rule
	defaultReply string
}

// NewResponder creates a responder over rules in priority order.
// An empty defaultReply falls back to DefaultReply.
func NewResponder(rules []Rule, defaultReply string) *Responder {
	if defaultReply == "" {
		defaultReply = DefaultReply
	}

	normalised := make([]Rule, 0, len(rules))
	for _, r := range rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = Normalise(k); k != "" {
				keywords = append(keywords, k)
			}
		}
		r.Keywords = keywords
		r.Products = slices.Clone(r.Products)
		normalised = append(normalised, r)
	}

	return &Responder{
		rules:        normalised,
		defaultReply: defaultReply,
	}
}

// NewDefaultResponder creates a responder with the built-in rules.
func NewDefaultResponder() *Responder {
	return NewResponder(DefaultRules(), DefaultReply)
}

// Respond returns the reply of the first rule with a keyword contained in text.
// Pure: the same text always yields the same response.
func (r *Responder) Respond(text string) Response {
	msg := Normalise(text)

	for _, rule := range r.rules {
		for _, k := range rule.Keywords {
			if strings.Contains(msg, k) {
				return Response{
					Text:     rule.Reply,
					Products: slices.Clone(rule.Products),
					Rule:     rule.Name,
				}
			}
		}
	}

	return Response{Text: r.defaultReply, Rule: RuleDefault}
}

// Rules returns the rule names in priority order.
func (r *Responder) Rules() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.Name
	}
	return names
}

// Normalise composes text to NFC, lowercases it and trims surrounding space,
// so "SÍNTOMA" typed with a combining accent still matches "síntoma".
func Normalise(text string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFC.String(text)))
}
