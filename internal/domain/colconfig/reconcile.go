package colconfig

// Update group names reported by Update.Groups.
const (
	GroupInvertedIndex = "inverted_index"
	GroupMultiTenancy  = "multi_tenancy"
	GroupReplication   = "replication"
	GroupVectorIndex   = "vector_index"
)

// Update is the structured result of Reconcile. A nil group was not edited
// and must be left untouched; a nil leaf inside a group likewise.
type Update struct {
	Description   *string              `json:"description,omitempty"`
	InvertedIndex *InvertedIndexUpdate `json:"inverted_index,omitempty"`
	MultiTenancy  *MultiTenancyUpdate  `json:"multi_tenancy,omitempty"`
	Replication   *ReplicationUpdate   `json:"replication,omitempty"`
	VectorIndex   *VectorIndexUpdate   `json:"vector_index,omitempty"`
}

type InvertedIndexUpdate struct {
	BM25B                  *float64         `json:"bm25_b,omitempty"`
	BM25K1                 *float64         `json:"bm25_k1,omitempty"`
	CleanupIntervalSeconds *int             `json:"cleanup_interval_seconds,omitempty"`
	StopwordsPreset        *StopwordsPreset `json:"stopwords_preset,omitempty"`
	StopwordsAdditions     *[]string        `json:"stopwords_additions,omitempty"`
	StopwordsRemovals      *[]string        `json:"stopwords_removals,omitempty"`
}

type MultiTenancyUpdate struct {
	AutoTenantCreation   *bool `json:"auto_tenant_creation,omitempty"`
	AutoTenantActivation *bool `json:"auto_tenant_activation,omitempty"`
}

type ReplicationUpdate struct {
	AsyncEnabled     *bool             `json:"async_enabled,omitempty"`
	DeletionStrategy *DeletionStrategy `json:"deletion_strategy,omitempty"`
}

// VectorIndexUpdate carries HNSW settings and, nested, the quantizer.
type VectorIndexUpdate struct {
	DynamicEfFactor       *int            `json:"dynamic_ef_factor,omitempty"`
	DynamicEfMin          *int            `json:"dynamic_ef_min,omitempty"`
	DynamicEfMax          *int            `json:"dynamic_ef_max,omitempty"`
	FilterStrategy        *FilterStrategy `json:"filter_strategy,omitempty"`
	FlatSearchCutoff      *int            `json:"flat_search_cutoff,omitempty"`
	VectorCacheMaxObjects *int            `json:"vector_cache_max_objects,omitempty"`
	Quantizer             *PQUpdate       `json:"quantizer,omitempty"`
}

type PQUpdate struct {
	Enabled             *bool                `json:"enabled,omitempty"`
	Centroids           *int                 `json:"centroids,omitempty"`
	Segments            *int                 `json:"segments,omitempty"`
	TrainingLimit       *int                 `json:"training_limit,omitempty"`
	EncoderType         *EncoderType         `json:"encoder_type,omitempty"`
	EncoderDistribution *EncoderDistribution `json:"encoder_distribution,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Description == nil && len(u.Groups()) == 0
}

// Groups names the subsystem groups present in the update, in a fixed order.
// The description is top-level and not a group.
func (u Update) Groups() []string {
	var out []string
	if u.InvertedIndex != nil {
		out = append(out, GroupInvertedIndex)
	}
	if u.MultiTenancy != nil {
		out = append(out, GroupMultiTenancy)
	}
	if u.Replication != nil {
		out = append(out, GroupReplication)
	}
	if u.VectorIndex != nil {
		out = append(out, GroupVectorIndex)
	}
	return out
}

// Reconcile translates a flat edit set into grouped update instructions.
//
// Only edited fields appear in the result; nothing is defaulted. Unrecognized
// field names are ignored. Any enum value outside its vocabulary, or any value
// of the wrong type, fails the whole call and no update is returned. The
// vocabularies are fixed, so snap only identifies what the edits apply to.
func Reconcile(_ Snapshot, edits EditSet) (Update, error) {
	n := make(map[string]any, len(edits))
	for _, field := range Fields() {
		v, ok := edits[field]
		if !ok {
			continue
		}
		nv, err := normalize(field, v)
		if err != nil {
			return Update{}, err
		}
		n[field] = nv
	}

	var u Update
	u.Description = leaf[string](n, FieldDescription)

	if anyPresent(n, invertedFields) {
		u.InvertedIndex = &InvertedIndexUpdate{
			BM25B:                  leaf[float64](n, FieldBM25B),
			BM25K1:                 leaf[float64](n, FieldBM25K1),
			CleanupIntervalSeconds: leaf[int](n, FieldCleanupIntervalSeconds),
			StopwordsPreset:        leaf[StopwordsPreset](n, FieldStopwordsPreset),
			StopwordsAdditions:     leaf[[]string](n, FieldStopwordsAdditions),
			StopwordsRemovals:      leaf[[]string](n, FieldStopwordsRemovals),
		}
	}

	if anyPresent(n, multiTenancyFields) {
		u.MultiTenancy = &MultiTenancyUpdate{
			AutoTenantCreation:   leaf[bool](n, FieldAutoTenantCreation),
			AutoTenantActivation: leaf[bool](n, FieldAutoTenantActivation),
		}
	}

	if anyPresent(n, replicationFields) {
		u.Replication = &ReplicationUpdate{
			AsyncEnabled:     leaf[bool](n, FieldAsyncEnabled),
			DeletionStrategy: leaf[DeletionStrategy](n, FieldDeletionStrategy),
		}
	}

	if anyPresent(n, vectorFields) || anyPresent(n, pqFields) {
		u.VectorIndex = &VectorIndexUpdate{
			DynamicEfFactor:       leaf[int](n, FieldDynamicEfFactor),
			DynamicEfMin:          leaf[int](n, FieldDynamicEfMin),
			DynamicEfMax:          leaf[int](n, FieldDynamicEfMax),
			FilterStrategy:        leaf[FilterStrategy](n, FieldFilterStrategy),
			FlatSearchCutoff:      leaf[int](n, FieldFlatSearchCutoff),
			VectorCacheMaxObjects: leaf[int](n, FieldVectorCacheMaxObjects),
		}
		if anyPresent(n, pqFields) {
			u.VectorIndex.Quantizer = &PQUpdate{
				Enabled:             leaf[bool](n, FieldPQEnabled),
				Centroids:           leaf[int](n, FieldPQCentroids),
				Segments:            leaf[int](n, FieldPQSegments),
				TrainingLimit:       leaf[int](n, FieldPQTrainingLimit),
				EncoderType:         leaf[EncoderType](n, FieldPQEncoderType),
				EncoderDistribution: leaf[EncoderDistribution](n, FieldPQEncoderDistribution),
			}
		}
	}

	return u, nil
}

func leaf[T any](n map[string]any, field string) *T {
	v, ok := n[field]
	if !ok {
		return nil
	}
	x := v.(T)
	return &x
}

func anyPresent(n map[string]any, fields []string) bool {
	for _, f := range fields {
		if _, ok := n[f]; ok {
			return true
		}
	}
	return false
}
