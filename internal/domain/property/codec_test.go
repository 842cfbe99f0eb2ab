package property

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDecode_EmptyContainers(t *testing.T) {
	if got := Decode(map[string]any{}, Object); got != "{}" {
		t.Errorf("Decode({}, object) = %v", got)
	}
	if got := Decode([]any{}, ArrayOf(Text)); got != "[]" {
		t.Errorf("Decode([], text[]) = %v", got)
	}
	if got := Decode(nil, ArrayOf(Int)); got != "[]" {
		t.Errorf("Decode(nil, int[]) = %v", got)
	}
	if got := Decode(nil, Object); got != "{}" {
		t.Errorf("Decode(nil, object) = %v", got)
	}
}

func TestDecode_IndentedJSON(t *testing.T) {
	got := Decode([]any{"a", "b"}, ArrayOf(Text))
	want := "[\n  \"a\",\n  \"b\"\n]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = Decode(map[string]any{"k": "<v>"}, Object)
	want = "{\n  \"k\": \"<v>\"\n}"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		tag   Tag
		want  any
	}{
		{"int from float", float64(42), Int, int64(42)},
		{"int from string", "17", Int, int64(17)},
		{"int from json number", json.Number("9007199254740993"), Int, int64(9007199254740993)},
		{"int fallback", "abc", Int, int64(0)},
		{"int nil", nil, Int, int64(0)},
		{"number", "2.5", Number, 2.5},
		{"number fallback", "x", Number, 0.0},
		{"bool true", true, Boolean, true},
		{"bool empty string", "", Boolean, false},
		{"bool nonzero", float64(3), Boolean, true},
		{"bool nil", nil, Boolean, false},
		{"text", "hello", Text, "hello"},
		{"text nil", nil, Text, ""},
		{"text from number", float64(12), Text, "12"},
		{"unknown tag", "v", Tag("customThing"), "v"},
		{"date unparseable", "not-a-date", Date, "not-a-date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.value, tt.tag)
			if got != tt.want {
				t.Errorf("Decode(%v, %q) = %#v, want %#v", tt.value, tt.tag, got, tt.want)
			}
		})
	}
}

func TestDecode_Date(t *testing.T) {
	got := Decode("2024-03-01T10:20:30Z", Date)
	d, ok := got.(time.Time)
	if !ok {
		t.Fatalf("want time.Time, got %T", got)
	}
	want := time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("got %v, want %v", d, want)
	}

	got = Decode("2024-03-01T10:20:30+02:00", Date)
	if d, ok := got.(time.Time); !ok || !d.Equal(want.Add(-2*time.Hour)) {
		t.Errorf("offset date decoded to %v", got)
	}
}

func TestEncode_Boolean(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{"TRUE", true},
		{"true", true},
		{"True", true},
		{"no", false},
		{"1", false},
		{"", false},
		{true, true},
		{false, false},
		{float64(1), true},
		{float64(0), false},
		{nil, false},
	}
	for _, tt := range tests {
		got, ok := Encode(tt.value, Boolean)
		if !ok || got != tt.want {
			t.Errorf("Encode(%#v, boolean) = %v, %v; want %v", tt.value, got, ok, tt.want)
		}
	}
}

func TestEncode_IntAndNumber(t *testing.T) {
	if got, ok := Encode("12", Int); !ok || got != int64(12) {
		t.Errorf("Encode(12) = %v, %v", got, ok)
	}
	if got, ok := Encode(float64(3.9), Int); !ok || got != int64(3) {
		t.Errorf("Encode(3.9) = %v, %v", got, ok)
	}
	if got, ok := Encode("abc", Int); ok || got != nil {
		t.Errorf("Encode(abc, int) = %v, %v; want nil, false", got, ok)
	}
	if got, ok := Encode("3.5", Int); ok {
		t.Errorf("Encode(3.5 string, int) = %v; want failure", got)
	}
	if got, ok := Encode("1.25", Number); !ok || got != 1.25 {
		t.Errorf("Encode(1.25) = %v, %v", got, ok)
	}
	if _, ok := Encode("nope", Number); ok {
		t.Error("Encode(nope, number) should fail")
	}
}

func TestIntRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -7, 1 << 40} {
		shown := Decode(v, Int)
		back, ok := Encode(shown, Int)
		if !ok || back != v {
			t.Errorf("round trip %d: got %v, %v", v, back, ok)
		}
	}
}

func TestUnparseableIntFallsBackToZero(t *testing.T) {
	shown := Decode("abc", Int)
	if shown != int64(0) {
		t.Fatalf("decode = %#v, want 0", shown)
	}
	back, ok := Encode(shown, Int)
	if !ok || back != int64(0) {
		t.Fatalf("encode = %#v, %v; want 0", back, ok)
	}
}

func TestEncode_Object(t *testing.T) {
	got, _ := Encode("{}", Object)
	if m, ok := got.(map[string]any); !ok || len(m) != 0 {
		t.Errorf("Encode({}) = %#v", got)
	}
	got, _ = Encode(`{"a": 1}`, Object)
	want := map[string]any{"a": json.Number("1")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
	got, _ = Encode("[1]", Object)
	if m, ok := got.(map[string]any); !ok || len(m) != 0 {
		t.Errorf("non-object json should become empty map, got %#v", got)
	}
	got, _ = Encode("{broken", Object)
	if m, ok := got.(map[string]any); !ok || len(m) != 0 {
		t.Errorf("broken json should become empty map, got %#v", got)
	}
	in := map[string]any{"x": "y"}
	got, _ = Encode(in, Object)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("map should pass through, got %#v", got)
	}
}

func TestEncode_Array(t *testing.T) {
	got, _ := Encode("[]", ArrayOf(Text))
	if s, ok := got.([]any); !ok || len(s) != 0 {
		t.Errorf("Encode([]) = %#v", got)
	}
	got, _ = Encode(`["1", "x", 3]`, ArrayOf(Int))
	want := []any{int64(1), nil, int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
	got, _ = Encode([]any{1.0, "b"}, ArrayOf(Text))
	want = []any{"1", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
	got, _ = Encode("not json", ArrayOf(Text))
	if s, ok := got.([]any); !ok || len(s) != 0 {
		t.Errorf("invalid json should become empty array, got %#v", got)
	}
	got, _ = Encode(`{"a":1}`, ArrayOf(Text))
	if s, ok := got.([]any); !ok || len(s) != 0 {
		t.Errorf("object json should become empty array, got %#v", got)
	}
}

func TestEncode_Date(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"2024-03-01T10:20:30Z", "2024-03-01T10:20:30+00:00"},
		{"2024-03-01T12:20:30+02:00", "2024-03-01T10:20:30+00:00"},
		{"2024-03-01", "2024-03-01T00:00:00+00:00"},
		{"2024-03-01T10:20:30.123456", "2024-03-01T10:20:30+00:00"},
		{time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC), "2024-03-01T10:20:30+00:00"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		got, ok := Encode(tt.value, Date)
		if !ok || got != tt.want {
			t.Errorf("Encode(%v, date) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestEncode_TextLike(t *testing.T) {
	for _, tag := range []Tag{Text, String, UUID, GeoCoordinates, PhoneNumber, Blob} {
		got, ok := Encode(float64(5), tag)
		if !ok || got != "5" {
			t.Errorf("Encode(5, %q) = %v", tag, got)
		}
	}
}

func TestEncode_UnknownTagPassesThrough(t *testing.T) {
	got, ok := Encode(float64(5), Tag("cref"))
	if !ok || got != float64(5) {
		t.Errorf("got %#v", got)
	}
}
