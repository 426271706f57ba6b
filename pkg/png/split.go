package png

// MaxImageDataChunk is the largest IDAT payload emitted by the splitter,
// matching the buffer size of common PNG encoders.
const MaxImageDataChunk = 8192

// SplitImageData cuts payload into consecutive IDAT chunks of at most
// MaxImageDataChunk bytes each.
func SplitImageData(payload []byte) []Chunk {
	chunks := make([]Chunk, 0, (len(payload)+MaxImageDataChunk-1)/MaxImageDataChunk)
	for off := 0; off < len(payload); off += MaxImageDataChunk {
		end := min(off+MaxImageDataChunk, len(payload))
		chunks = append(chunks, NewChunk(TypeIDAT, payload[off:end:end]))
	}
	return chunks
}

func appendImageData(dst []byte, payload []byte) []byte {
	for _, c := range SplitImageData(payload) {
		dst = AppendChunk(dst, c, false)
	}
	return dst
}
