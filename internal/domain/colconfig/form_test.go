package colconfig

import (
	"reflect"
	"sort"
	"testing"
)

func TestFormDefaults_FromSnapshot(t *testing.T) {
	f := FormDefaults(testSnapshot())
	checks := map[string]any{
		FieldDescription:           "news articles",
		FieldBM25B:                 0.75,
		FieldStopwordsAdditions:    "foo",
		FieldStopwordsRemovals:     "",
		FieldStopwordsPreset:       "EN",
		FieldAutoTenantCreation:    true,
		FieldDeletionStrategy:      "NO_AUTOMATED_RESOLUTION",
		FieldFlatSearchCutoff:      40000,
		FieldPQTrainingLimit:       100000,
		FieldPQEncoderDistribution: "LOG_NORMAL",
		FieldPQEnabled:             false,
	}
	for field, want := range checks {
		if got := f[field]; got != want {
			t.Errorf("%s = %#v, want %#v", field, got, want)
		}
	}
	if len(f) != len(Fields()) {
		t.Errorf("form has %d fields, want %d", len(f), len(Fields()))
	}
}

func TestFormDefaults_AbsentSections(t *testing.T) {
	f := FormDefaults(Snapshot{Name: "Bare"})
	checks := map[string]any{
		FieldBM25K1:                 1.2,
		FieldCleanupIntervalSeconds: 60,
		FieldDynamicEfFactor:        8,
		FieldFilterStrategy:         "SWEEPING",
		FieldVectorCacheMaxObjects:  1000000,
		FieldPQCentroids:            256,
		FieldPQEncoderType:          "KMEANS",
		FieldPQEncoderDistribution:  "NORMAL",
		FieldDeletionStrategy:       "DELETE_ON_CONFLICT",
	}
	for field, want := range checks {
		if got := f[field]; got != want {
			t.Errorf("%s = %#v, want %#v", field, got, want)
		}
	}
}

func TestFormDefaults_ReconcilesToValidUpdate(t *testing.T) {
	if _, err := Reconcile(testSnapshot(), FormDefaults(testSnapshot())); err != nil {
		t.Fatalf("a prefilled form must reconcile cleanly: %v", err)
	}
}

func TestFormDefaults_PartialSections(t *testing.T) {
	snap := Snapshot{
		Name:            "Flat",
		VectorIndexType: "flat",
		VectorIndex:     &VectorIndex{VectorCacheMaxObjects: 5},
		Replication:     &Replication{Factor: 1},
	}
	f := FormDefaults(snap)
	if got := f[FieldFilterStrategy]; got != "SWEEPING" {
		t.Errorf("filter_strategy = %#v, want SWEEPING", got)
	}
	if got := f[FieldDeletionStrategy]; got != "DELETE_ON_CONFLICT" {
		t.Errorf("deletion_strategy = %#v, want DELETE_ON_CONFLICT", got)
	}
	if got := f[FieldVectorCacheMaxObjects]; got != 5 {
		t.Errorf("vector_cache_max_objects = %#v, want 5", got)
	}

	pruned := Prune(snap, f)
	if _, ok := pruned[FieldVectorCacheMaxObjects]; ok {
		t.Error("unchanged vector_cache_max_objects was not pruned")
	}
	u, err := Reconcile(snap, pruned)
	if err != nil {
		t.Fatalf("pruned form must reconcile: %v", err)
	}
	if u.Replication == nil || u.Replication.DeletionStrategy == nil || *u.Replication.DeletionStrategy != DeleteOnConflict {
		t.Errorf("replication = %+v", u.Replication)
	}
	if u.VectorIndex == nil || u.VectorIndex.FilterStrategy == nil || *u.VectorIndex.FilterStrategy != FilterSweeping {
		t.Errorf("vector index = %+v", u.VectorIndex)
	}
}

func TestFormDefaults_UnknownEnumFallsBack(t *testing.T) {
	snap := testSnapshot()
	snap.VectorIndex.FilterStrategy = "rrf"
	snap.InvertedIndex.StopwordsPreset = ""
	f := FormDefaults(snap)
	if f[FieldFilterStrategy] != "SWEEPING" || f[FieldStopwordsPreset] != "EN" {
		t.Fatalf("filter = %#v preset = %#v", f[FieldFilterStrategy], f[FieldStopwordsPreset])
	}
	if _, err := Reconcile(snap, Prune(snap, f)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPrune_UnchangedFormIsEmpty(t *testing.T) {
	snap := testSnapshot()
	pruned := Prune(snap, FormDefaults(snap))
	u, err := Reconcile(snap, pruned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !u.IsEmpty() {
		t.Fatalf("want empty update, got groups %v from %v", u.Groups(), pruned)
	}
}

func TestPrune_KeepsChanges(t *testing.T) {
	snap := testSnapshot()
	edits := FormDefaults(snap)
	edits[FieldBM25K1] = 1.5
	edits[FieldStopwordsAdditions] = "foo, bar"
	edits[FieldDeletionStrategy] = "NoAutomatedResolution"

	pruned := Prune(snap, edits)
	keys := make([]string, 0, len(pruned))
	for k := range pruned {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	want := []string{FieldBM25K1, FieldStopwordsAdditions}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("pruned keys = %v, want %v", keys, want)
	}
}

func TestPrune_KeepsAbsentSectionsAndInvalid(t *testing.T) {
	snap := Snapshot{Name: "Bare"}
	pruned := Prune(snap, EditSet{FieldBM25B: 0.75, FieldDeletionStrategy: "NOT_REAL"})
	if len(pruned) != 2 {
		t.Fatalf("got %v", pruned)
	}
}

func TestTable(t *testing.T) {
	rows := Table(testSnapshot())
	got := make(map[string]string, len(rows))
	for _, r := range rows {
		got[r.Label] = r.Value
	}
	checks := map[string]string{
		"Description":             "news articles",
		"BM25 B":                  "0.75",
		"Stopwords Additions":     "foo",
		"Deletion Strategy":       "NO_AUTOMATED_RESOLUTION",
		"Vector Index Type":       "hnsw",
		"Filter Strategy":         "SWEEPING",
		"Stopwords Preset":        "EN",
		"PQ Encoder Type":         "KMEANS",
		"PQ Encoder Distribution": "LOG_NORMAL",
	}
	for label, want := range checks {
		if got[label] != want {
			t.Errorf("%s = %q, want %q", label, got[label], want)
		}
	}
	if rows[0].Label != "Description" {
		t.Errorf("first row = %s", rows[0].Label)
	}
}

func TestTable_NonHNSWOmitsGraphSettings(t *testing.T) {
	snap := Snapshot{VectorIndexType: "flat", VectorIndex: &VectorIndex{VectorCacheMaxObjects: 5}}
	rows := Table(snap)
	for _, r := range rows {
		if r.Label == "Dynamic EF Factor" {
			t.Fatal("hnsw rows listed for a flat index")
		}
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
}

func TestOptions(t *testing.T) {
	opts := Options()
	if got := opts[FieldDeletionStrategy]; !reflect.DeepEqual(got, []string{"DELETE_ON_CONFLICT", "NO_AUTOMATED_RESOLUTION", "TIME_BASED_RESOLUTION"}) {
		t.Fatalf("deletion options = %v", got)
	}
}
