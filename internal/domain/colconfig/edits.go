package colconfig

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
)

// EditSet is a flat mapping from edit field name to the new value.
// Values are JSON-decoded: numbers may arrive as float64 or json.Number.
type EditSet map[string]any

// Edit field names.
const (
	FieldDescription = "description"

	FieldBM25B                  = "bm25_b"
	FieldBM25K1                 = "bm25_k1"
	FieldCleanupIntervalSeconds = "cleanup_interval_seconds"
	FieldStopwordsAdditions     = "stopwords_additions"
	FieldStopwordsPreset        = "stopwords_preset"
	FieldStopwordsRemovals      = "stopwords_removals"

	FieldAutoTenantCreation   = "auto_tenant_creation"
	FieldAutoTenantActivation = "auto_tenant_activation"

	FieldAsyncEnabled     = "async_enabled"
	FieldDeletionStrategy = "deletion_strategy"

	FieldDynamicEfFactor       = "dynamic_ef_factor"
	FieldDynamicEfMin          = "dynamic_ef_min"
	FieldDynamicEfMax          = "dynamic_ef_max"
	FieldFilterStrategy        = "filter_strategy"
	FieldFlatSearchCutoff      = "flat_search_cutoff"
	FieldVectorCacheMaxObjects = "vector_cache_max_objects"

	FieldPQEnabled             = "pq_enabled"
	FieldPQCentroids           = "pq_centroids"
	FieldPQSegments            = "pq_segments"
	FieldPQTrainingLimit       = "pq_training_limit"
	FieldPQEncoderType         = "pq_encoder_type"
	FieldPQEncoderDistribution = "pq_encoder_distribution"
)

// Field groups. A group is emitted when any of its fields is edited.
var (
	invertedFields = []string{
		FieldBM25B, FieldBM25K1, FieldCleanupIntervalSeconds,
		FieldStopwordsAdditions, FieldStopwordsPreset, FieldStopwordsRemovals,
	}
	multiTenancyFields = []string{FieldAutoTenantCreation, FieldAutoTenantActivation}
	replicationFields  = []string{FieldAsyncEnabled, FieldDeletionStrategy}
	vectorFields       = []string{
		FieldDynamicEfFactor, FieldDynamicEfMin, FieldDynamicEfMax,
		FieldFilterStrategy, FieldFlatSearchCutoff, FieldVectorCacheMaxObjects,
	}
	pqFields = []string{
		FieldPQEnabled, FieldPQCentroids, FieldPQSegments,
		FieldPQTrainingLimit, FieldPQEncoderType, FieldPQEncoderDistribution,
	}
)

// Fields lists every recognized edit field in form order.
func Fields() []string {
	out := []string{FieldDescription}
	for _, g := range [][]string{invertedFields, multiTenancyFields, replicationFields, vectorFields, pqFields} {
		out = append(out, g...)
	}
	return out
}

type kind int

const (
	kindUnknown kind = iota
	kindString
	kindNumber
	kindInt
	kindBool
	kindWords
	kindEnum
)

var fieldKinds = map[string]kind{
	FieldDescription:            kindString,
	FieldBM25B:                  kindNumber,
	FieldBM25K1:                 kindNumber,
	FieldCleanupIntervalSeconds: kindInt,
	FieldStopwordsAdditions:     kindWords,
	FieldStopwordsPreset:        kindEnum,
	FieldStopwordsRemovals:      kindWords,
	FieldAutoTenantCreation:     kindBool,
	FieldAutoTenantActivation:   kindBool,
	FieldAsyncEnabled:           kindBool,
	FieldDeletionStrategy:       kindEnum,
	FieldDynamicEfFactor:        kindInt,
	FieldDynamicEfMin:           kindInt,
	FieldDynamicEfMax:           kindInt,
	FieldFilterStrategy:         kindEnum,
	FieldFlatSearchCutoff:       kindInt,
	FieldVectorCacheMaxObjects:  kindInt,
	FieldPQEnabled:              kindBool,
	FieldPQCentroids:            kindInt,
	FieldPQSegments:             kindInt,
	FieldPQTrainingLimit:        kindInt,
	FieldPQEncoderType:          kindEnum,
	FieldPQEncoderDistribution:  kindEnum,
}

var enumParsers = map[string]func(any) (any, error){
	FieldStopwordsPreset:       parser(stopwordPresets),
	FieldDeletionStrategy:      parser(deletionStrategies),
	FieldFilterStrategy:        parser(filterStrategies),
	FieldPQEncoderType:         parser(encoderTypes),
	FieldPQEncoderDistribution: parser(encoderDistributions),
}

func parser[T ~string](s enumSet[T]) func(any) (any, error) {
	return func(v any) (any, error) { return s.parse(v) }
}

// normalize converts an edit value into the canonical Go type of its field:
// string, float64, int, bool, []string, or the field's enum type.
func normalize(field string, v any) (any, error) {
	switch fieldKinds[field] {
	case kindString:
		s, ok := v.(string)
		if !ok {
			return nil, domain.NewInvalidFieldValue(field, v, "string")
		}
		return s, nil
	case kindNumber:
		f, ok := toNumber(v)
		if !ok {
			return nil, domain.NewInvalidFieldValue(field, v, "number")
		}
		return f, nil
	case kindInt:
		n, ok := toInteger(v)
		if !ok {
			return nil, domain.NewInvalidFieldValue(field, v, "integer")
		}
		return n, nil
	case kindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, domain.NewInvalidFieldValue(field, v, "boolean")
		}
		return b, nil
	case kindWords:
		w, ok := toWords(v)
		if !ok {
			return nil, domain.NewInvalidFieldValue(field, v, "comma-separated string or list of strings")
		}
		return w, nil
	case kindEnum:
		return enumParsers[field](v)
	default:
		return nil, domain.NewInvalidFieldValue(field, v, "known field")
	}
}

func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// toInteger accepts integer types and integral floats.
func toInteger(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		if x > math.MaxInt || x < math.MinInt {
			return 0, false
		}
		return int(x), true
	case int32:
		return int(x), true
	case json.Number:
		if n, err := x.Int64(); err == nil && n <= math.MaxInt && n >= math.MinInt {
			return int(n), true
		}
	}
	f, ok := toNumber(v)
	if !ok || f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// toWords accepts a comma-separated string or a list of strings. Tokens are
// trimmed and empty tokens dropped. The result is never nil.
func toWords(v any) ([]string, bool) {
	var raw []string
	switch x := v.(type) {
	case string:
		raw = strings.Split(x, ",")
	case []string:
		raw = x
	case []any:
		raw = make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			raw = append(raw, s)
		}
	case nil:
	default:
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out, true
}
