package util

import (
	"math"
	"testing"
)

func TestAddUint64(t *testing.T) {
	t.Parallel()
	cases := []struct {
		args    []uint64
		want    uint64
		wantErr bool
	}{
		{nil, 0, false},
		{[]uint64{}, 0, false},
		{[]uint64{0}, 0, false},
		{[]uint64{1}, 1, false},
		{[]uint64{math.MaxUint64}, math.MaxUint64, false},
		{[]uint64{1, 2, 3}, 6, false},
		{[]uint64{1, math.MaxUint64}, 0, true},
		{[]uint64{math.MaxUint64, math.MaxUint64}, math.MaxUint64 - 1, true},
	}
	for _, c := range cases {
		got, overflow, err := AddUint64(c.args...)

		if err != nil && !c.wantErr {
			t.Errorf("AddUint64(%v) got unexpected error: %v", c.args, err)
		}
		if overflow && !c.wantErr {
			t.Errorf("AddUint64(%v) got unexpected overflow: %v", c.args, overflow)
		}
		if err == nil && c.wantErr {
			t.Errorf("AddUint64(%v) expected error but got none", c.args)
		}
		if got != c.want {
			t.Errorf("AddUint64(%v) got %d, want %d", c.args, got, c.want)
		}
	}
}

func TestMulUint64(t *testing.T) {
	t.Parallel()
	cases := []struct {
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{0, 0, 0, false},
		{0, math.MaxUint64, 0, false},
		{1, math.MaxUint64, math.MaxUint64, false},
		{2, math.MaxUint64 / 2, math.MaxUint64 - 1, false},
		{1_000_000, math.MaxUint64 / 1_000_000, 18446744073709000000, false},
		{1_000_000, math.MaxUint64/1_000_000 + 1, 448384, true},
		{2, math.MaxUint64, math.MaxUint64 - 1, true},
		{math.MaxUint64, math.MaxUint64, 1, true},
	}
	for _, c := range cases {
		got, overflow, err := MulUint64(c.a, c.b)

		if err != nil && !c.wantErr {
			t.Errorf("MulUint64(%d, %d) got unexpected error: %v", c.a, c.b, err)
		}
		if overflow != c.wantErr {
			t.Errorf("MulUint64(%d, %d) overflow is %v, want %v", c.a, c.b, overflow, c.wantErr)
		}
		if err == nil && c.wantErr {
			t.Errorf("MulUint64(%d, %d) expected error but got none", c.a, c.b)
		}
		if got != c.want {
			t.Errorf("MulUint64(%d, %d) got %d, want %d", c.a, c.b, got, c.want)
		}
	}
}
