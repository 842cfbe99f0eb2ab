package weaviate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain/colconfig"
)

// FetchConfig reads the tunable configuration of collection.
func (c *Client) FetchConfig(ctx context.Context, collection string) (colconfig.Snapshot, error) {
	body, err := c.fetchClass(ctx, "fetch_config", collection)
	if err != nil {
		return colconfig.Snapshot{}, err
	}
	return parseSnapshot(body), nil
}

// ApplyConfig writes u onto the current class definition. Only the leaves
// present in u are changed; every other setting is sent back as read.
func (c *Client) ApplyConfig(ctx context.Context, collection string, u colconfig.Update) error {
	class, err := c.fetchClass(ctx, "apply_config", collection)
	if err != nil {
		return err
	}
	patched, err := patchClass(class, u)
	if err != nil {
		return fmt.Errorf("apply_config: %w", err)
	}
	_, err = c.call(ctx, request{
		op:     "apply_config",
		method: http.MethodPut,
		path:   classPath(collection),
		body:   patched,
	}, nil)
	return err
}

func parseSnapshot(class []byte) colconfig.Snapshot {
	doc := gjson.ParseBytes(class)
	snap := colconfig.Snapshot{
		Name:            doc.Get("class").String(),
		Description:     doc.Get("description").String(),
		VectorIndexType: doc.Get("vectorIndexType").String(),
	}

	if ii := doc.Get("invertedIndexConfig"); ii.Exists() {
		snap.InvertedIndex = &colconfig.InvertedIndex{
			BM25B:                  ii.Get("bm25.b").Float(),
			BM25K1:                 ii.Get("bm25.k1").Float(),
			CleanupIntervalSeconds: int(ii.Get("cleanupIntervalSeconds").Int()),
			StopwordsPreset:        colconfig.StopwordsPreset(ii.Get("stopwords.preset").String()),
			StopwordsAdditions:     stringList(ii.Get("stopwords.additions")),
			StopwordsRemovals:      stringList(ii.Get("stopwords.removals")),
		}
	}
	if mt := doc.Get("multiTenancyConfig"); mt.Exists() {
		snap.MultiTenancy = &colconfig.MultiTenancy{
			Enabled:              mt.Get("enabled").Bool(),
			AutoTenantCreation:   mt.Get("autoTenantCreation").Bool(),
			AutoTenantActivation: mt.Get("autoTenantActivation").Bool(),
		}
	}
	if r := doc.Get("replicationConfig"); r.Exists() {
		snap.Replication = &colconfig.Replication{
			Factor:           int(r.Get("factor").Int()),
			AsyncEnabled:     r.Get("asyncEnabled").Bool(),
			DeletionStrategy: colconfig.DeletionStrategy(r.Get("deletionStrategy").String()),
		}
	}
	if vi := doc.Get("vectorIndexConfig"); vi.Exists() {
		snap.VectorIndex = &colconfig.VectorIndex{
			DynamicEfFactor:       int(vi.Get("dynamicEfFactor").Int()),
			DynamicEfMin:          int(vi.Get("dynamicEfMin").Int()),
			DynamicEfMax:          int(vi.Get("dynamicEfMax").Int()),
			FilterStrategy:        colconfig.FilterStrategy(vi.Get("filterStrategy").String()),
			FlatSearchCutoff:      int(vi.Get("flatSearchCutoff").Int()),
			VectorCacheMaxObjects: int(vi.Get("vectorCacheMaxObjects").Int()),
		}
		if pq := vi.Get("pq"); pq.Exists() {
			snap.VectorIndex.PQ = &colconfig.PQ{
				Enabled:       pq.Get("enabled").Bool(),
				Centroids:     int(pq.Get("centroids").Int()),
				Segments:      int(pq.Get("segments").Int()),
				TrainingLimit: int(pq.Get("trainingLimit").Int()),
			}
			if enc := pq.Get("encoder"); enc.Exists() {
				snap.VectorIndex.PQ.Encoder = &colconfig.PQEncoder{
					Type:         colconfig.EncoderType(enc.Get("type").String()),
					Distribution: colconfig.EncoderDistribution(enc.Get("distribution").String()),
				}
			}
		}
	}
	return snap
}

func stringList(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

// patcher applies sjson sets to a class document and keeps the first error.
type patcher struct {
	doc []byte
	err error
}

func set[T any](p *patcher, path string, v *T) {
	if v == nil || p.err != nil {
		return
	}
	p.doc, p.err = sjson.SetBytes(p.doc, path, *v)
}

func patchClass(class []byte, u colconfig.Update) ([]byte, error) {
	p := &patcher{doc: class}
	set(p, "description", u.Description)

	if ii := u.InvertedIndex; ii != nil {
		set(p, "invertedIndexConfig.bm25.b", ii.BM25B)
		set(p, "invertedIndexConfig.bm25.k1", ii.BM25K1)
		set(p, "invertedIndexConfig.cleanupIntervalSeconds", ii.CleanupIntervalSeconds)
		set(p, "invertedIndexConfig.stopwords.preset", ii.StopwordsPreset)
		set(p, "invertedIndexConfig.stopwords.additions", ii.StopwordsAdditions)
		set(p, "invertedIndexConfig.stopwords.removals", ii.StopwordsRemovals)
	}
	if mt := u.MultiTenancy; mt != nil {
		set(p, "multiTenancyConfig.autoTenantCreation", mt.AutoTenantCreation)
		set(p, "multiTenancyConfig.autoTenantActivation", mt.AutoTenantActivation)
	}
	if r := u.Replication; r != nil {
		set(p, "replicationConfig.asyncEnabled", r.AsyncEnabled)
		set(p, "replicationConfig.deletionStrategy", r.DeletionStrategy)
	}
	if vi := u.VectorIndex; vi != nil {
		set(p, "vectorIndexConfig.dynamicEfFactor", vi.DynamicEfFactor)
		set(p, "vectorIndexConfig.dynamicEfMin", vi.DynamicEfMin)
		set(p, "vectorIndexConfig.dynamicEfMax", vi.DynamicEfMax)
		set(p, "vectorIndexConfig.filterStrategy", vi.FilterStrategy)
		set(p, "vectorIndexConfig.flatSearchCutoff", vi.FlatSearchCutoff)
		set(p, "vectorIndexConfig.vectorCacheMaxObjects", vi.VectorCacheMaxObjects)
		if q := vi.Quantizer; q != nil {
			set(p, "vectorIndexConfig.pq.enabled", q.Enabled)
			set(p, "vectorIndexConfig.pq.centroids", q.Centroids)
			set(p, "vectorIndexConfig.pq.segments", q.Segments)
			set(p, "vectorIndexConfig.pq.trainingLimit", q.TrainingLimit)
			set(p, "vectorIndexConfig.pq.encoder.type", q.EncoderType)
			set(p, "vectorIndexConfig.pq.encoder.distribution", q.EncoderDistribution)
		}
	}
	return p.doc, p.err
}
