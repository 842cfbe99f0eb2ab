package colconfig

import (
	"strconv"
	"strings"
)

// Row is one label/value pair of a flattened configuration.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

const vectorIndexHNSW = "hnsw"

// Table flattens snap into display rows. Sections the collection does not
// expose produce no rows; HNSW-only settings are listed only for hnsw indexes.
func Table(snap Snapshot) []Row {
	rows := []Row{{"Description", snap.Description}}
	if ii := snap.InvertedIndex; ii != nil {
		rows = append(rows,
			Row{"BM25 B", formatFloat(ii.BM25B)},
			Row{"BM25 K1", formatFloat(ii.BM25K1)},
			Row{"Cleanup Interval (s)", strconv.Itoa(ii.CleanupIntervalSeconds)},
			Row{"Stopwords Preset", stopwordPresets.name(ii.StopwordsPreset)},
			Row{"Stopwords Additions", strings.Join(ii.StopwordsAdditions, ", ")},
			Row{"Stopwords Removals", strings.Join(ii.StopwordsRemovals, ", ")},
		)
	}
	if mt := snap.MultiTenancy; mt != nil {
		rows = append(rows,
			Row{"Auto Tenant Creation", strconv.FormatBool(mt.AutoTenantCreation)},
			Row{"Auto Tenant Activation", strconv.FormatBool(mt.AutoTenantActivation)},
		)
	}
	if r := snap.Replication; r != nil {
		rows = append(rows,
			Row{"Deletion Strategy", deletionStrategies.name(r.DeletionStrategy)},
			Row{"Async Enabled", strconv.FormatBool(r.AsyncEnabled)},
		)
	}
	vi := snap.VectorIndex
	if vi == nil {
		return rows
	}
	rows = append(rows,
		Row{"Vector Index Type", snap.VectorIndexType},
		Row{"Vector Cache Max Objects", strconv.Itoa(vi.VectorCacheMaxObjects)},
	)
	if snap.VectorIndexType != vectorIndexHNSW {
		return rows
	}
	rows = append(rows,
		Row{"Dynamic EF Factor", strconv.Itoa(vi.DynamicEfFactor)},
		Row{"Dynamic EF Min", strconv.Itoa(vi.DynamicEfMin)},
		Row{"Dynamic EF Max", strconv.Itoa(vi.DynamicEfMax)},
		Row{"Filter Strategy", filterStrategies.name(vi.FilterStrategy)},
		Row{"Flat Search Cutoff", strconv.Itoa(vi.FlatSearchCutoff)},
	)
	if pq := vi.PQ; pq != nil {
		rows = append(rows,
			Row{"PQ Enabled", strconv.FormatBool(pq.Enabled)},
			Row{"PQ Centroids", strconv.Itoa(pq.Centroids)},
			Row{"PQ Segments", strconv.Itoa(pq.Segments)},
			Row{"PQ Training Limit", strconv.Itoa(pq.TrainingLimit)},
		)
		if enc := pq.Encoder; enc != nil {
			rows = append(rows,
				Row{"PQ Encoder Type", encoderTypes.name(enc.Type)},
				Row{"PQ Encoder Distribution", encoderDistributions.name(enc.Distribution)},
			)
		}
	}
	return rows
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
