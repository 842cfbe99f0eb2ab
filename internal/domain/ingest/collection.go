package ingest

import (
	"fmt"
	"regexp"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	"github.com/raywlfun/WeaviateDBCluster/internal/domain/property"
)

// DefaultReplicationFactor is the replica count of created collections.
const DefaultReplicationFactor = 3

var collectionNamePattern = regexp.MustCompile(`^[A-Za-z][_0-9A-Za-z]*$`)

// ValidateName checks that name can be used as a collection name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: collection name is required", domain.ErrValidation)
	}
	if !collectionNamePattern.MatchString(name) {
		return fmt.Errorf("%w: invalid collection name %q (letters, digits and _ only, starting with a letter)",
			domain.ErrValidation, name)
	}
	return nil
}

// CollectionSpec describes a collection to create.
type CollectionSpec struct {
	Name              string
	Vectorizer        Vectorizer
	ReplicationFactor int
}

// Info summarizes a collection after an import.
type Info struct {
	Name        string            `json:"name"`
	Vectorizer  string            `json:"vectorizer"`
	ObjectCount int64             `json:"object_count"`
	Properties  []property.Schema `json:"properties"`
}

// Failure is one object the cluster rejected.
type Failure struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Report is the outcome of one import.
type Report struct {
	Total    int       `json:"total"`
	Imported int       `json:"imported"`
	Failures []Failure `json:"failures"`
}
