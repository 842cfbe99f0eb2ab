package colconfig

import (
	"sort"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// DeletionStrategy resolves conflicts between a delete and a concurrent write.
type DeletionStrategy string

// Deletion strategies, as sent on the wire.
const (
	DeleteOnConflict      DeletionStrategy = "DeleteOnConflict"
	NoAutomatedResolution DeletionStrategy = "NoAutomatedResolution"
	TimeBasedResolution   DeletionStrategy = "TimeBasedResolution"
)

// FilterStrategy selects how filtered vector searches traverse the graph.
type FilterStrategy string

// Filter strategies.
const (
	FilterSweeping FilterStrategy = "sweeping"
	FilterAcorn    FilterStrategy = "acorn"
)

// EncoderType is the PQ centroid training algorithm.
type EncoderType string

// PQ encoder types.
const (
	EncoderKMeans EncoderType = "kmeans"
	EncoderTile   EncoderType = "tile"
)

// EncoderDistribution is the assumed distribution for the tile encoder.
type EncoderDistribution string

// PQ encoder distributions.
const (
	DistributionLogNormal EncoderDistribution = "log-normal"
	DistributionNormal    EncoderDistribution = "normal"
)

// StopwordsPreset is the base stopword list of the inverted index.
type StopwordsPreset string

// Stopword presets.
const (
	StopwordsEN   StopwordsPreset = "en"
	StopwordsNone StopwordsPreset = "none"
)

// enumSet maps the symbolic names of an enumeration to their wire values.
type enumSet[T ~string] struct {
	field  string
	byName map[string]T
}

var (
	deletionStrategies = enumSet[DeletionStrategy]{
		field: FieldDeletionStrategy,
		byName: map[string]DeletionStrategy{
			"DELETE_ON_CONFLICT":      DeleteOnConflict,
			"NO_AUTOMATED_RESOLUTION": NoAutomatedResolution,
			"TIME_BASED_RESOLUTION":   TimeBasedResolution,
		},
	}
	filterStrategies = enumSet[FilterStrategy]{
		field: FieldFilterStrategy,
		byName: map[string]FilterStrategy{
			"SWEEPING": FilterSweeping,
			"ACORN":    FilterAcorn,
		},
	}
	encoderTypes = enumSet[EncoderType]{
		field: FieldPQEncoderType,
		byName: map[string]EncoderType{
			"KMEANS": EncoderKMeans,
			"TILE":   EncoderTile,
		},
	}
	encoderDistributions = enumSet[EncoderDistribution]{
		field: FieldPQEncoderDistribution,
		byName: map[string]EncoderDistribution{
			"LOG_NORMAL": DistributionLogNormal,
			"NORMAL":     DistributionNormal,
		},
	}
	stopwordPresets = enumSet[StopwordsPreset]{
		field: FieldStopwordsPreset,
		byName: map[string]StopwordsPreset{
			"EN":   StopwordsEN,
			"NONE": StopwordsNone,
		},
	}
)

// parse accepts either a symbolic name or a wire value.
func (s enumSet[T]) parse(v any) (T, error) {
	str, ok := v.(string)
	if ok {
		if w, found := s.byName[str]; found {
			return w, nil
		}
		for _, w := range s.byName {
			if string(w) == str {
				return w, nil
			}
		}
	}
	return "", domain.NewInvalidEnumValue(s.field, v)
}

// name returns the symbolic name of w, or w itself when it is not a member.
func (s enumSet[T]) name(w T) string {
	if n, ok := s.lookup(w); ok {
		return n
	}
	return string(w)
}

// lookup reports the symbolic name of w when w is a member of the set.
func (s enumSet[T]) lookup(w T) (string, bool) {
	for n, v := range s.byName {
		if v == w {
			return n, true
		}
	}
	return "", false
}

func (s enumSet[T]) names() []string {
	out := make([]string, 0, len(s.byName))
	for n := range s.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Options lists the accepted symbolic names for every enum-like field.
func Options() map[string][]string {
	return map[string][]string{
		FieldDeletionStrategy:      deletionStrategies.names(),
		FieldFilterStrategy:        filterStrategies.names(),
		FieldPQEncoderType:         encoderTypes.names(),
		FieldPQEncoderDistribution: encoderDistributions.names(),
		FieldStopwordsPreset:       stopwordPresets.names(),
	}
}
