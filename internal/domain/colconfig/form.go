package colconfig

import (
	"reflect"
	"strings"
)

// defaults prefill form fields whose section the collection does not expose.
var defaults = EditSet{
	FieldDescription:            "",
	FieldBM25B:                  0.75,
	FieldBM25K1:                 1.2,
	FieldCleanupIntervalSeconds: 60,
	FieldStopwordsPreset:        "EN",
	FieldStopwordsAdditions:     "",
	FieldStopwordsRemovals:      "",
	FieldAutoTenantCreation:     false,
	FieldAutoTenantActivation:   false,
	FieldAsyncEnabled:           false,
	FieldDeletionStrategy:       "DELETE_ON_CONFLICT",
	FieldDynamicEfFactor:        8,
	FieldDynamicEfMin:           100,
	FieldDynamicEfMax:           500,
	FieldFilterStrategy:         "SWEEPING",
	FieldFlatSearchCutoff:       10000,
	FieldVectorCacheMaxObjects:  1000000,
	FieldPQEnabled:              false,
	FieldPQCentroids:            256,
	FieldPQSegments:             8,
	FieldPQTrainingLimit:        10000,
	FieldPQEncoderType:          "KMEANS",
	FieldPQEncoderDistribution:  "NORMAL",
}

// FormDefaults returns a complete edit set prefilled from snap. Fields of
// absent sections, and enum fields the cluster left empty or set to a value
// outside the vocabulary, take their default values. Enum fields carry symbolic names
// and stopword lists are comma-joined.
func FormDefaults(snap Snapshot) EditSet {
	out := make(EditSet, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range current(snap) {
		if words, ok := v.([]string); ok {
			v = strings.Join(words, ", ")
		}
		out[k] = v
	}
	return out
}

// Prune drops edits whose value already matches snap. Edits for fields of
// absent sections, and edits that do not validate, are kept so that Reconcile
// still sees them.
func Prune(snap Snapshot, edits EditSet) EditSet {
	cur := current(snap)
	out := make(EditSet, len(edits))
	for field, v := range edits {
		c, ok := cur[field]
		if ok && sameValue(field, c, v) {
			continue
		}
		out[field] = v
	}
	return out
}

func sameValue(field string, current, edited any) bool {
	e, err := normalize(field, edited)
	if err != nil {
		return false
	}
	c, err := normalize(field, current)
	if err != nil {
		return false
	}
	return reflect.DeepEqual(c, e)
}

// current flattens the sections present in snap into edit-field form.
func current(snap Snapshot) EditSet {
	out := EditSet{FieldDescription: snap.Description}
	if ii := snap.InvertedIndex; ii != nil {
		out[FieldBM25B] = ii.BM25B
		out[FieldBM25K1] = ii.BM25K1
		out[FieldCleanupIntervalSeconds] = ii.CleanupIntervalSeconds
		setEnum(out, stopwordPresets, ii.StopwordsPreset)
		out[FieldStopwordsAdditions] = nonNil(ii.StopwordsAdditions)
		out[FieldStopwordsRemovals] = nonNil(ii.StopwordsRemovals)
	}
	if mt := snap.MultiTenancy; mt != nil {
		out[FieldAutoTenantCreation] = mt.AutoTenantCreation
		out[FieldAutoTenantActivation] = mt.AutoTenantActivation
	}
	if r := snap.Replication; r != nil {
		out[FieldAsyncEnabled] = r.AsyncEnabled
		setEnum(out, deletionStrategies, r.DeletionStrategy)
	}
	if vi := snap.VectorIndex; vi != nil {
		out[FieldDynamicEfFactor] = vi.DynamicEfFactor
		out[FieldDynamicEfMin] = vi.DynamicEfMin
		out[FieldDynamicEfMax] = vi.DynamicEfMax
		setEnum(out, filterStrategies, vi.FilterStrategy)
		out[FieldFlatSearchCutoff] = vi.FlatSearchCutoff
		out[FieldVectorCacheMaxObjects] = vi.VectorCacheMaxObjects
		if pq := vi.PQ; pq != nil {
			out[FieldPQEnabled] = pq.Enabled
			out[FieldPQCentroids] = pq.Centroids
			out[FieldPQSegments] = pq.Segments
			out[FieldPQTrainingLimit] = pq.TrainingLimit
			if enc := pq.Encoder; enc != nil {
				setEnum(out, encoderTypes, enc.Type)
				setEnum(out, encoderDistributions, enc.Distribution)
			}
		}
	}
	return out
}

// setEnum records the symbolic name of w. Unknown or empty wire values are
// left out so the field counts as unset.
func setEnum[T ~string](out EditSet, s enumSet[T], w T) {
	if n, ok := s.lookup(w); ok {
		out[s.field] = n
	}
}

func nonNil(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
