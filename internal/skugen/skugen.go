package skugen

import (
	"strconv"
	"strings"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	// SuffixLength is the number of random characters after the timestamp
	SuffixLength = 3
)

// Generator produces SKUs from a clock and a random suffix
type Generator struct {
	now    func() time.Time
	suffix func() string
}

// NewGenerator creates a generator. A nil clock uses time.Now.
func NewGenerator(now func() time.Time) (*Generator, error) {
	if now == nil {
		now = time.Now
	}
	suffix, err := nanoid.CustomASCII(base36Alphabet, SuffixLength)
	if err != nil {
		return nil, err
	}
	return &Generator{now: now, suffix: suffix}, nil
}

// Generate returns base36(unix millis) followed by the random suffix, upper-cased
func (g *Generator) Generate() string {
	ts := strconv.FormatInt(g.now().UnixMilli(), 36)
	return strings.ToUpper(ts + g.suffix())
}

var defaultGenerator *Generator

func init() {
	g, err := NewGenerator(nil)
	if err != nil {
		panic(err)
	}
	defaultGenerator = g
}

// Generate returns a new SKU using the wall clock
func Generate() string {
	return defaultGenerator.Generate()
}
