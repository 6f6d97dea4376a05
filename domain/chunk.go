package domain

const KB = 1024
const MB = KB * KB

const (
	// MaxChunkSize is the largest attachment the transport accepts.
	MaxChunkSize = 8 * MB
	// MaxBundleSize is the number of attachments allowed on one message.
	MaxBundleSize = 10
)

// Chunk is a contiguous byte range of the uploaded file, staged on disk.
// Chunk i covers bytes [i*MaxChunkSize, min((i+1)*MaxChunkSize, L)).
type Chunk struct {
	Index    int
	Path     string
	Size     int64
	MimeType string
}

// Bundle is an ordered run of consecutive chunks sent as one message.
type Bundle struct {
	Index  int
	Chunks []Chunk
}

// Size returns the number of bytes carried by the bundle.
func (b Bundle) Size() int64 {
	var total int64
	for _, c := range b.Chunks {
		total += c.Size
	}
	return total
}
