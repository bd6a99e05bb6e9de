package renderer

// Mode decides whether a render produces pixels or only advances the rng. Both modes make
// exactly the same draws, so a skip render can seek the rng state a paint render would
// leave behind.
type Mode interface {
	newCanvas(w, h int) *Canvas
	respectChunks() bool
	String() string
}

type paintMode struct{}

func (paintMode) newCanvas(w, h int) *Canvas { return NewCanvas(w, h) }
func (paintMode) respectChunks() bool        { return true }
func (paintMode) String() string             { return "paint" }

type skipMode struct{}

func (skipMode) newCanvas(int, int) *Canvas { return nil }
func (skipMode) respectChunks() bool        { return false }
func (skipMode) String() string             { return "skip" }

var (
	// Paint draws into canvases.
	Paint Mode = paintMode{}
	// Skip draws nothing and always runs as a single chunk.
	Skip Mode = skipMode{}
)
