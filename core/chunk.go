package core

import "github.com/Alvsch/steel-tui/schema"

const (
	chunkSize  = schema.ChunkSize
	chunkCells = chunkSize * chunkSize
)

// chunk is one generated 16x16 column. gen counts mutations so a save
// in flight can tell whether the chunk changed underneath it.
type chunk struct {
	pos     schema.ChunkPos
	heights []byte
	dirty   bool
	gen     uint64
}

func (c *chunk) record() schema.ChunkRecord {
	heights := make([]byte, len(c.heights))
	copy(heights, c.heights)
	return schema.ChunkRecord{Pos: c.pos, Heights: heights}
}

// generateChunk builds the deterministic terrain column for pos. The
// same seed and position always produce the same heights.
func generateChunk(seed int64, pos schema.ChunkPos) *chunk {
	heights := make([]byte, chunkCells)
	for i := range heights {
		cx := pos.X*chunkSize + int32(i%chunkSize)
		cz := pos.Z*chunkSize + int32(i/chunkSize)
		heights[i] = 60 + uint8(cellNoise(seed, cx, cz)%8)
	}
	return &chunk{pos: pos, heights: heights, dirty: true, gen: 1}
}

// cellNoise hashes a world cell coordinate with the seed, using the
// splitmix64 finalizer for diffusion.
func cellNoise(seed int64, x, z int32) uint64 {
	v := uint64(seed) ^ uint64(uint32(x))<<32 ^ uint64(uint32(z))
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}
