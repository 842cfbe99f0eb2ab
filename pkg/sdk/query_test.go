package wvadmin

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domcluster "github.com/raywlfun/WeaviateDBCluster/internal/domain/cluster"
	domsearch "github.com/raywlfun/WeaviateDBCluster/internal/domain/search"
	clusteruc "github.com/raywlfun/WeaviateDBCluster/internal/usecase/cluster"
)

// --- SearchService ---

func TestSearchService_Hybrid(t *testing.T) {
	var got domsearch.Request
	orig := 0.8
	mock := &mockSearchUC{
		searchFn: func(_ context.Context, req domsearch.Request) (domsearch.Result, error) {
			got = req
			return domsearch.Result{
				Mode: req.Mode(),
				Hits: []domsearch.Hit{{ID: objectID, Score: 0.016, OriginalScore: &orig}},
				Took: 12 * time.Millisecond,
			}, nil
		},
	}

	alpha := 0.7
	svc := &SearchService{svc: mock}
	res, err := svc.Search(context.Background(), SearchQuery{Collection: "Docs", Text: "vector", Hybrid: true, Alpha: &alpha})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mode() != domsearch.Hybrid || got.Alpha() != 0.7 || got.Limit() != domsearch.DefaultLimit {
		t.Errorf("request = %+v", got)
	}
	if res.Mode != "hybrid" || len(res.Hits) != 1 || *res.Hits[0].OriginalScore != 0.8 || res.Took != 12*time.Millisecond {
		t.Errorf("result = %+v", res)
	}
}

func TestSearchService_Invalid(t *testing.T) {
	mock := &mockSearchUC{
		searchFn: func(context.Context, domsearch.Request) (domsearch.Result, error) {
			t.Fatal("search must not run for an invalid query")
			return domsearch.Result{}, nil
		},
	}
	svc := &SearchService{svc: mock}
	_, err := svc.Search(context.Background(), SearchQuery{Collection: "Docs"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

// --- ClusterService ---

func TestClusterService_Nodes(t *testing.T) {
	mock := &mockClusterUC{nodes: []domcluster.Node{
		{Name: "node-1", Status: domcluster.NodeHealthy, Version: "1.30.0", ShardCount: 2, ObjectCount: 40},
	}}
	svc := &ClusterService{svc: mock}
	nodes, err := svc.Nodes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Node{{Name: "node-1", Status: "HEALTHY", Version: "1.30.0", ShardCount: 2, ObjectCount: 40}}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("got %+v", nodes)
	}
}

func TestClusterService_Consistency(t *testing.T) {
	mock := &mockClusterUC{consistency: clusteruc.Consistency{
		Inconsistent: 1,
		Shards: []domcluster.ShardReplicas{{
			Collection: "Docs",
			Shard:      "s1",
			Replicas:   []domcluster.ReplicaCount{{Node: "node-1", ObjectCount: 10}, {Node: "node-2", ObjectCount: 9}},
		}},
	}}
	svc := &ClusterService{svc: mock}
	shards, err := svc.Consistency(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ShardReplicas{{Collection: "Docs", Shard: "s1", Counts: map[string]int64{"node-1": 10, "node-2": 9}}}
	if !reflect.DeepEqual(shards, want) {
		t.Errorf("got %+v", shards)
	}
}

func TestClusterService_Error(t *testing.T) {
	svc := &ClusterService{svc: &mockClusterUC{err: &domain.RemoteError{Op: "nodes", StatusCode: 403, Message: "forbidden"}}}
	_, err := svc.Nodes(context.Background())
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.StatusCode != 403 {
		t.Fatalf("want RemoteError 403, got %v", err)
	}
}
