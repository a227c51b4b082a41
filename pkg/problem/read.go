package problem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/mstcc/pkg/errors"
	"github.com/matzehuels/mstcc/pkg/graph"
)

// ReadFile reads an instance from path. See [Read] for the format.
func ReadFile(path string) (*Problem, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Read parses an instance:
//
//	# optional comment lines
//	name
//	n
//	m
//	c
//	u v weight      (m lines)
//	a b x y         (c lines: edge (a,b) conflicts with edge (x,y))
//
// Vertices are numbered from 0. The counts may share a line. Conflicting
// edges are looked up by their endpoints in either orientation. The graph
// must be simple and connected, and no edge may conflict with itself.
func Read(r io.Reader) (*Problem, error) {
	s := newScanner(r)

	name, err := s.header()
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateInstanceName(name); err != nil {
		return nil, err
	}

	n, err := s.readInt("vertex count")
	if err != nil {
		return nil, err
	}
	m, err := s.readInt("edge count")
	if err != nil {
		return nil, err
	}
	c, err := s.readInt("conflict count")
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "instance %q has no vertices", name)
	}

	ends := make([][2]int, m)
	w := make([]uint32, m)
	seen := make(map[[2]int]int, m)
	for e := 0; e < m; e++ {
		u, v, err := s.vertexPair(n)
		if err != nil {
			return nil, err
		}
		wt, err := s.readUint32("edge weight")
		if err != nil {
			return nil, err
		}
		if u == v {
			return nil, s.errorf("self-loop on vertex %d", u)
		}
		k := [2]int{min(u, v), max(u, v)}
		if prev, ok := seen[k]; ok {
			return nil, s.errorf("edge (%d, %d) duplicates edge %d", u, v, prev)
		}
		seen[k] = e
		ends[e] = [2]int{u, v}
		w[e] = wt
	}

	g, err := graph.New(n, ends)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "build graph")
	}
	if !graph.IsConnected(g) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "instance %q: graph is not connected", name)
	}

	cc := make([][]int, m)
	pairs := make(map[[2]int]bool, c)
	for i := 0; i < c; i++ {
		ab, err := s.edge(g, n)
		if err != nil {
			return nil, err
		}
		xy, err := s.edge(g, n)
		if err != nil {
			return nil, err
		}
		if ab == xy {
			return nil, s.errorf("edge %d conflicts with itself", ab)
		}
		k := [2]int{min(ab, xy), max(ab, xy)}
		if pairs[k] {
			return nil, s.errorf("conflict between edges %d and %d declared twice", ab, xy)
		}
		pairs[k] = true
		cc[ab] = append(cc[ab], xy)
		cc[xy] = append(cc[xy], ab)
	}

	if extra, ok := s.next(); ok {
		return nil, s.errorf("unexpected trailing token %q", extra)
	}

	return &Problem{Name: name, G: g, W: w, CC: cc, NumCC: c}, nil
}

// =============================================================================
// Tokenizer
// =============================================================================

type scanner struct {
	sc     *bufio.Scanner
	fields []string
	line   int
	err    error
}

func newScanner(r io.Reader) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &scanner{sc: sc}
}

// header skips leading comment lines and returns the name line.
func (s *scanner) header() (string, error) {
	for s.sc.Scan() {
		s.line++
		text := s.sc.Text()
		if strings.HasPrefix(text, "#") {
			continue
		}
		return strings.TrimSpace(text), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read instance")
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "empty instance")
}

func (s *scanner) next() (string, bool) {
	for len(s.fields) == 0 {
		if !s.sc.Scan() {
			s.err = s.sc.Err()
			return "", false
		}
		s.line++
		s.fields = strings.Fields(s.sc.Text())
	}
	tok := s.fields[0]
	s.fields = s.fields[1:]
	return tok, true
}

func (s *scanner) errorf(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidFormat, "line %d: %s", s.line, fmt.Sprintf(format, args...))
}

func (s *scanner) token(what string) (string, error) {
	tok, ok := s.next()
	if !ok {
		if s.err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, s.err, "read instance")
		}
		return "", errors.New(errors.ErrCodeInvalidFormat, "unexpected end of input, expected %s", what)
	}
	return tok, nil
}

func (s *scanner) readInt(what string) (int, error) {
	tok, err := s.token(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, s.errorf("invalid %s %q", what, tok)
	}
	return v, nil
}

func (s *scanner) readUint32(what string) (uint32, error) {
	tok, err := s.token(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, s.errorf("invalid %s %q", what, tok)
	}
	return uint32(v), nil
}

func (s *scanner) vertexPair(n int) (int, int, error) {
	u, err := s.readInt("vertex")
	if err != nil {
		return 0, 0, err
	}
	v, err := s.readInt("vertex")
	if err != nil {
		return 0, 0, err
	}
	if u >= n || v >= n {
		return 0, 0, s.errorf("edge (%d, %d): vertex out of range [0, %d)", u, v, n)
	}
	return u, v, nil
}

func (s *scanner) edge(g *graph.Graph, n int) (int, error) {
	u, v, err := s.vertexPair(n)
	if err != nil {
		return 0, err
	}
	e, ok := g.EdgeByEnds(u, v)
	if !ok {
		return 0, s.errorf("conflict references unknown edge (%d, %d)", u, v)
	}
	return e, nil
}
