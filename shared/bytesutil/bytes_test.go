package bytesutil_test

import (
	"testing"

	"github.com/prysmaticlabs/bcc/shared/bytesutil"
)

func TestToBytes32(t *testing.T) {
	tests := []struct {
		in   []byte
		want [32]byte
	}{
		{nil, [32]byte{}},
		{[]byte{1, 2, 3}, [32]byte{1, 2, 3}},
		{
			[]byte{
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
				21, 22, 23, 24, 25, 26, 27, 28, 29, 30,
				31, 32,
			},
			[32]byte{
				1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
				11, 12, 13, 14, 15, 16, 17, 18, 19, 20,
				21, 22, 23, 24, 25, 26, 27, 28, 29, 30,
				31, 32,
			},
		},
	}
	for _, tt := range tests {
		got := bytesutil.ToBytes32(tt.in)
		if got != tt.want {
			t.Errorf("ToBytes32(%v) = %v, want = %v", tt.in, got, tt.want)
		}
	}
}

func TestToBytes32_TruncatesOverlong(t *testing.T) {
	in := make([]byte, 40)
	for i := range in {
		in[i] = byte(i)
	}
	got := bytesutil.ToBytes32(in)
	for i := 0; i < 32; i++ {
		if got[i] != byte(i) {
			t.Errorf("ToBytes32 byte %d = %d, want %d", i, got[i], i)
		}
	}
}
