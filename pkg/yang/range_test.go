package yang

import "testing"

func TestParseRangeAndMatch(t *testing.T) {
	for _, tt := range []struct {
		name  string
		expr  string
		kind  TypeKind
		match []int64
		no    []int64
	}{
		{
			name:  "single value",
			expr:  "5",
			kind:  Yint8,
			match: []int64{5},
			no:    []int64{4, 6},
		},
		{
			name:  "simple bound",
			expr:  "1..10",
			kind:  Yint8,
			match: []int64{1, 5, 10},
			no:    []int64{0, 11},
		},
		{
			name:  "multiple parts separated by pipe",
			expr:  "1..4 | 10..20",
			kind:  Yint8,
			match: []int64{2, 15},
			no:    []int64{5, 9, 21},
		},
		{
			name:  "multiple parts separated by comma",
			expr:  "1..4, 10..20",
			kind:  Yint8,
			match: []int64{2, 15},
			no:    []int64{5},
		},
		{
			name:  "min/max symbolic endpoints resolve to kind width",
			expr:  "min..max",
			kind:  Yint8,
			match: []int64{-128, 0, 127},
		},
		{
			name:  "min with explicit upper bound",
			expr:  "min..0",
			kind:  Yint16,
			match: []int64{-32768, 0},
			no:    []int64{1},
		},
		{
			name:  "unsigned width",
			expr:  "0..255",
			kind:  Yuint8,
			match: []int64{0, 255},
			no:    []int64{256, -1},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.expr)
			if err != nil {
				t.Fatalf("ParseRange(%q): %v", tt.expr, err)
			}
			for _, v := range tt.match {
				if !r.Match(v, tt.kind) {
					t.Errorf("Match(%d) = false, want true for range %q", v, tt.expr)
				}
			}
			for _, v := range tt.no {
				if r.Match(v, tt.kind) {
					t.Errorf("Match(%d) = true, want false for range %q", v, tt.expr)
				}
			}
		})
	}
}

func TestRangesMatchNilIsUnconstrained(t *testing.T) {
	var r *Ranges
	if !r.Match(12345, Yint32) {
		t.Fatal("a nil Ranges (no range statement) must match anything")
	}
}

func TestParseRangeInvalid(t *testing.T) {
	if _, err := ParseRange("not-a-number"); err == nil {
		t.Fatal("expected an error parsing a non-numeric range")
	}
}
