// Package ingest turns uploaded CSV or JSON files into objects for a new or
// existing collection.
package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// Vectorizer is the module that embeds objects of a collection.
type Vectorizer string

// Supported vectorizers. None means vectors are brought by the caller (BYOV).
const (
	VectorizerNone        Vectorizer = "none"
	VectorizerOpenAI      Vectorizer = "text2vec-openai"
	VectorizerCohere      Vectorizer = "text2vec-cohere"
	VectorizerHuggingFace Vectorizer = "text2vec-huggingface"
	VectorizerJinaAI      Vectorizer = "text2vec-jinaai"
)

type provider struct {
	name   string
	header string
}

var providers = map[Vectorizer]provider{
	VectorizerOpenAI:      {name: "OpenAI", header: "X-OpenAI-Api-Key"},
	VectorizerCohere:      {name: "Cohere", header: "X-Cohere-Api-Key"},
	VectorizerHuggingFace: {name: "HuggingFace", header: "X-HuggingFace-Api-Key"},
	VectorizerJinaAI:      {name: "JinaAI", header: "X-JinaAI-Api-Key"},
}

// Vectorizers lists the accepted vectorizer names.
func Vectorizers() []string {
	out := []string{string(VectorizerNone)}
	for v := range providers {
		out = append(out, string(v))
	}
	sort.Strings(out)
	return out
}

// ParseVectorizer accepts a module name, its underscore spelling, or BYOV.
// An empty name means none.
func ParseVectorizer(s string) (Vectorizer, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	switch norm {
	case "", "byov", string(VectorizerNone):
		return VectorizerNone, nil
	}
	v := Vectorizer(norm)
	if _, ok := providers[v]; !ok {
		return "", fmt.Errorf("%w: unsupported vectorizer %q", domain.ErrValidation, s)
	}
	return v, nil
}

// KeyHeader returns the request header carrying the provider key, or "" when
// the vectorizer needs none.
func (v Vectorizer) KeyHeader() string { return providers[v].header }

// CheckKey reports whether headers carry the provider key v needs. Header
// names match case-insensitively; empty values count as missing.
func (v Vectorizer) CheckKey(headers map[string]string) error {
	p, ok := providers[v]
	if !ok {
		return nil
	}
	for name, value := range headers {
		if strings.EqualFold(name, p.header) && value != "" {
			return nil
		}
	}
	return fmt.Errorf("%w: %s API key is required; configure the %s header or select BYOV",
		domain.ErrMissingAPIKey, p.name, p.header)
}
