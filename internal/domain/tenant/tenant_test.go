package tenant

import (
	"reflect"
	"testing"
)

func TestAggregateStates(t *testing.T) {
	got := AggregateStates([]Tenant{
		{Name: "a", ActivityStatus: StatusActive},
		{Name: "b", ActivityStatus: StatusInactive},
		{Name: "c", ActivityStatus: StatusActive},
		{Name: "d", ActivityStatus: StatusOffloaded},
	})
	want := []StateCount{
		{Status: StatusActive, Count: 2},
		{Status: StatusInactive, Count: 1},
		{Status: StatusOffloaded, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAggregateStates_Empty(t *testing.T) {
	got := AggregateStates(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}
