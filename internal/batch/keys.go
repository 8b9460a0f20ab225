package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"

	"github.com/san-kum/robometrics/internal/trace"
)

// KeyPattern extracts grouping parameters from export filenames. The first
// capture group is the key.
type KeyPattern struct {
	re *regexp.Regexp
}

var (
	// CirclePattern matches num-robots-<N>-seed-<S>.json; groups are N and S.
	CirclePattern = MustKeyPattern(`^num-robots-(\d+)-seed-(\d+)\.json$`)
	// JunctionPattern matches qin-<Q>.json and qin-<Q>-<anything>.json.
	JunctionPattern = MustKeyPattern(`^qin-([^-]+?)(?:-.*)?\.json$`)
)

func NewKeyPattern(expr string) (*KeyPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("key pattern %q has no capture group", expr)
	}
	return &KeyPattern{re: re}, nil
}

func MustKeyPattern(expr string) *KeyPattern {
	p, err := NewKeyPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *KeyPattern) String() string { return p.re.String() }

// Match returns the capture groups of the file's base name.
func (p *KeyPattern) Match(path string) ([]string, error) {
	m := p.re.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return nil, fmt.Errorf("%w: %s does not match %s", trace.ErrPatternMismatch, filepath.Base(path), p.re)
	}
	return m[1:], nil
}

// Int parses the key as an integer.
func (p *KeyPattern) Int(path string) (int, error) {
	groups, err := p.Match(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(groups[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", trace.ErrPatternMismatch, filepath.Base(path), err)
	}
	return n, nil
}

// Float parses the key as a float.
func (p *KeyPattern) Float(path string) (float64, error) {
	groups, err := p.Match(path)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(groups[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", trace.ErrPatternMismatch, filepath.Base(path), err)
	}
	return f, nil
}

// Discover lists the files of dir matching glob, sorted by name.
func Discover(dir, glob string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}
