package testutil

// FixedIDGenerator returns the same build ID every time.
//
// This keeps reports, history rows and golden output byte-identical between
// runs. Safe for concurrent use since it holds no mutable state.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator for id.
// If id is empty, Generate() returns "test-build-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-build-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed build ID.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
