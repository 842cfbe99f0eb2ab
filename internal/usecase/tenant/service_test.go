package tenant

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/raywlfun/WeaviateDBCluster/internal/domain"
	domtenant "github.com/raywlfun/WeaviateDBCluster/internal/domain/tenant"
)

// --- Mocks ---

type mockStore struct {
	tenants   []domtenant.Tenant
	cols      []domtenant.Collection
	err       error
	deleted   []string
	deleteErr error
}

func (m *mockStore) ListTenants(_ context.Context, _ string) ([]domtenant.Tenant, error) {
	return m.tenants, m.err
}

func (m *mockStore) DeleteTenants(_ context.Context, _ string, names []string) error {
	m.deleted = names
	return m.deleteErr
}

func (m *mockStore) MultiTenantCollections(_ context.Context) ([]domtenant.Collection, error) {
	return m.cols, m.err
}

// --- Tests ---

func TestList_SortsAndAggregates(t *testing.T) {
	svc := New(&mockStore{tenants: []domtenant.Tenant{
		{Name: "c", ActivityStatus: domtenant.StatusActive},
		{Name: "a", ActivityStatus: domtenant.StatusInactive},
		{Name: "b", ActivityStatus: domtenant.StatusActive},
	}})

	l, err := svc.List(context.Background(), "Article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Tenants[0].Name != "a" || l.Tenants[2].Name != "c" {
		t.Errorf("tenants not sorted: %+v", l.Tenants)
	}
	want := []domtenant.StateCount{{Status: "ACTIVE", Count: 2}, {Status: "INACTIVE", Count: 1}}
	if !reflect.DeepEqual(l.States, want) {
		t.Errorf("states = %+v", l.States)
	}
}

func TestList_Error(t *testing.T) {
	svc := New(&mockStore{err: domain.ErrNotFound})
	if _, err := svc.List(context.Background(), "Nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMultiTenantCollections(t *testing.T) {
	svc := New(&mockStore{cols: []domtenant.Collection{{Name: "Z"}, {Name: "B", AutoTenantCreation: true}}})
	cols, err := svc.MultiTenantCollections(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cols[0].Name != "B" || !cols[0].AutoTenantCreation {
		t.Errorf("cols = %+v", cols)
	}
}

func TestDelete_RequiresNames(t *testing.T) {
	store := &mockStore{}
	if err := New(store).Delete(context.Background(), "Article", nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if store.deleted != nil {
		t.Fatal("store must not be called")
	}
}

func TestDelete(t *testing.T) {
	store := &mockStore{}
	if err := New(store).Delete(context.Background(), "Article", []string{"t1", "t2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(store.deleted, []string{"t1", "t2"}) {
		t.Errorf("deleted = %v", store.deleted)
	}
}
