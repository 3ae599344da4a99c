package hash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"empty", nil, 0xef46db3751d8e999},
		{"short", []byte("test"), 0x4fdcca5ddb678139},
		{"long", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
		{"another", []byte("another test string"), 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Checksum(tt.data))
			assert.True(t, Verify(tt.data, tt.sum))
		})
	}
}

func TestVerify_DetectsFlippedBit(t *testing.T) {
	data := []byte{0x00, 0x05, 0x00, 0x00, 0x64, 0x01, 0x2C, 0x01, 0x00, 0x40}
	sum := Checksum(data)

	for i := range data {
		corrupted := append([]byte(nil), data...)
		corrupted[i] ^= 0x01
		assert.False(t, Verify(corrupted, sum), "flip at byte %d", i)
	}
}

func randRecords(n int) []byte {
	rng := rand.New(rand.NewSource(1))
	b := make([]byte, n)
	_, _ = rng.Read(b)

	return b
}

func BenchmarkChecksum(b *testing.B) {
	data := randRecords(64 * 1024)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for b.Loop() {
		Checksum(data)
	}
}
