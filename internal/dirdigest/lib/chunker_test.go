package lib

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/aclements/go-rabin/rabin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rabinTable is expensive to build, so it is shared by the tests below.
var rabinTable = rabin.NewTable(rabin.Poly64, 64)

// contentDefinedChunks splits content at Rabin fingerprint boundaries, which
// produces irregular chunk sizes that depend on the data itself.
func contentDefinedChunks(t *testing.T, content []byte, minSize, avgSize, maxSize int) [][]byte {
	t.Helper()

	chunker := rabin.NewChunker(rabinTable, bytes.NewReader(content), minSize, avgSize, maxSize)

	var chunks [][]byte
	var offset int
	for {
		length, err := chunker.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		chunks = append(chunks, content[offset:offset+length])
		offset += length
	}
	require.Equal(t, len(content), offset, "chunks must cover the whole input")
	return chunks
}

func TestUpdateWithContentDefinedChunks(t *testing.T) {
	// Arrange: pseudo-random data so the fingerprint finds many boundaries.
	rng := rand.New(rand.NewSource(42))
	content := make([]byte, 256*1024)
	rng.Read(content)

	chunks := contentDefinedChunks(t, content, 512, 2*1024, 8*1024)
	require.Greater(t, len(chunks), 1, "expected the data to be split")

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			want, err := DigestBytes(alg, content)
			require.NoError(t, err)

			// Act
			d, err := NewDigest(alg)
			require.NoError(t, err)
			for _, chunk := range chunks {
				d.Update(chunk)
			}

			// Assert
			assert.Equal(t, want, d.Finalize())
		})
	}
}
