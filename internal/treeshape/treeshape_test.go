package treeshape

import "testing"

func TestLargestPowerOfTwo(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, out uint64
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 4},
		{7, 4},
		{8, 8},
		{0xffffffffffffffff, 0x8000000000000000},
	}
	for _, c := range cases {
		if got := LargestPowerOfTwo(c.in); got != c.out {
			t.Errorf("LargestPowerOfTwo(%d) = %d, want %d", c.in, got, c.out)
		}
	}
}

func TestLargestPowerOfTwoZeroPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for LargestPowerOfTwo(0)")
		}
	}()
	LargestPowerOfTwo(0)
}

func TestLeftSubtreeLen(t *testing.T) {
	t.Parallel()

	s := uint64(LeafLen)
	cases := []struct {
		in, out uint64
	}{
		{s + 1, s},
		{2*s - 1, s},
		{2 * s, s},
		{2*s + 1, 2 * s},
	}
	for _, c := range cases {
		if got := LeftSubtreeLen(c.in); got != c.out {
			t.Errorf("LeftSubtreeLen(%d) = %d, want %d", c.in, got, c.out)
		}
	}
}

func TestLeftSubtreeLenProperties(t *testing.T) {
	t.Parallel()

	for n := uint64(LeafLen + 1); n < uint64(20*LeafLen); n++ {
		l := LeftSubtreeLen(n)
		if l%LeafLen != 0 {
			t.Fatalf("LeftSubtreeLen(%d) = %d is not a multiple of LeafLen", n, l)
		}
		if l == 0 || l >= n {
			t.Fatalf("LeftSubtreeLen(%d) = %d violates 1 <= L(n) < n", n, l)
		}
		leaves := l / LeafLen
		if leaves&(leaves-1) != 0 {
			t.Fatalf("LeftSubtreeLen(%d)/LeafLen = %d is not a power of two", n, leaves)
		}
	}
}

func TestLeftSubtreeLenAtExactPowersOfTwo(t *testing.T) {
	t.Parallel()

	for k := uint64(1); k <= 8; k++ {
		n := (uint64(1) << k) * LeafLen
		want := (uint64(1) << (k - 1)) * LeafLen
		if got := LeftSubtreeLen(n); got != want {
			t.Errorf("LeftSubtreeLen(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestLeftSubtreeLenPanicsAtOrBelowLeafLen(t *testing.T) {
	t.Parallel()

	for _, n := range []uint64{0, 1, LeafLen - 1, LeafLen} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for LeftSubtreeLen(%d)", n)
				}
			}()
			LeftSubtreeLen(n)
		}()
	}
}
