package embedding

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// vector sizes of the models commonly served by OpenAI and Ollama
var knownDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
	"all-minilm":             384,
	"snowflake-arctic-embed": 1024,
	"bge-m3":                 1024,
}

// Dimensions reports the vector size of model. Ollama tags ("name:latest")
// are ignored.
func Dimensions(model string) (int, bool) {
	name, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(model)), ":")
	dims, ok := knownDimensions[name]
	return dims, ok
}

// CheckDimensions fails when model is known to produce vectors of a size
// other than want. Unknown models pass.
func CheckDimensions(model string, want int) error {
	dims, ok := Dimensions(model)
	if !ok || dims == want {
		return nil
	}
	return fmt.Errorf("%w: model %q produces %d dimensions, the movies column holds %d", ErrDimensionMismatch, model, dims, want)
}
