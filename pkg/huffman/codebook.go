package huffman

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// bitChunk is up to 64 code bits, right aligned.
type bitChunk struct {
	val uint64
	n   uint8
}

// trieNode is a decoding trie slot. A leaf has no children.
type trieNode struct {
	child [2]int
	sym   Symbol
	leaf  bool
}

// Codebook maps symbols to prefix-free bit codes and back. It is never mutated after
// construction and may be shared between goroutines.
type Codebook struct {
	order  []Symbol
	codes  map[Symbol]string
	chunks map[Symbol][]bitChunk
	trie   []trieNode
}

// CodebookFromTree extracts the codes of t. Records keep the first-seen order of the
// symbols in the counted input.
func CodebookFromTree(t *Tree) *Codebook {
	codes := make(map[Symbol]string, t.Leaves())
	t.Codes(func(s Symbol, code string) { codes[s] = code })

	order := make([]Symbol, t.Leaves())
	for i := range order {
		order[i] = t.nodes[i].sym
	}
	cb, err := newCodebook(order, codes)
	if err != nil {
		// A proper binary tree cannot produce a conflicting code set.
		panic(err)
	}
	return cb
}

// Build counts symbols, builds the tree and extracts its codebook. Empty input yields an
// empty codebook together with ErrEmptyInput.
func Build(symbols []Symbol) (*Codebook, *FrequencyTable, error) {
	ft, err := CountFrequencies(symbols)
	if err != nil {
		return emptyCodebook(), ft, err
	}
	t, err := BuildTree(ft)
	if err != nil {
		return emptyCodebook(), ft, err
	}
	return CodebookFromTree(t), ft, nil
}

func emptyCodebook() *Codebook {
	cb, _ := newCodebook(nil, nil)
	return cb
}

func newCodebook(order []Symbol, codes map[Symbol]string) (*Codebook, error) {
	cb := &Codebook{
		order:  order,
		codes:  codes,
		chunks: make(map[Symbol][]bitChunk, len(order)),
		trie:   []trieNode{{child: [2]int{noChild, noChild}}},
	}
	if cb.codes == nil {
		cb.codes = make(map[Symbol]string)
	}
	for _, s := range order {
		code := codes[s]
		if err := cb.insert(s, code); err != nil {
			return nil, err
		}
		cb.chunks[s] = packCode(code)
	}
	return cb, nil
}

func (cb *Codebook) insert(s Symbol, code string) error {
	cur := 0
	for i := 0; i < len(code); i++ {
		if cb.trie[cur].leaf {
			return fmt.Errorf("code %q of %q has the code of %q as a prefix", code, s, cb.trie[cur].sym)
		}
		bit := code[i] - '0'
		next := cb.trie[cur].child[bit]
		if next == noChild {
			cb.trie = append(cb.trie, trieNode{child: [2]int{noChild, noChild}})
			next = len(cb.trie) - 1
			cb.trie[cur].child[bit] = next
		}
		cur = next
	}
	n := &cb.trie[cur]
	switch {
	case n.leaf:
		return fmt.Errorf("code %q is used by both %q and %q", code, n.sym, s)
	case n.child[0] != noChild || n.child[1] != noChild:
		return fmt.Errorf("code %q of %q is a prefix of another code", code, s)
	}
	n.leaf = true
	n.sym = s
	return nil
}

func packCode(code string) []bitChunk {
	out := make([]bitChunk, 0, (len(code)+63)/64)
	for len(code) > 0 {
		n := len(code)
		if n > 64 {
			n = 64
		}
		var c bitChunk
		for i := 0; i < n; i++ {
			c.val = c.val<<1 | uint64(code[i]-'0')
		}
		c.n = uint8(n)
		out = append(out, c)
		code = code[n:]
	}
	return out
}

// Len is the number of symbols.
func (cb *Codebook) Len() int { return len(cb.order) }

// Symbols returns the symbols in record order.
func (cb *Codebook) Symbols() []Symbol {
	out := make([]Symbol, len(cb.order))
	copy(out, cb.order)
	return out
}

// Code returns the bit string of s.
func (cb *Codebook) Code(s Symbol) (string, bool) {
	code, ok := cb.codes[s]
	return code, ok
}

// Lookup is the inverse mapping.
func (cb *Codebook) Lookup(code string) (Symbol, bool) {
	cur := 0
	for i := 0; i < len(code); i++ {
		if code[i] != '0' && code[i] != '1' {
			return 0, false
		}
		cur = cb.trie[cur].child[code[i]-'0']
		if cur == noChild {
			return 0, false
		}
	}
	n := cb.trie[cur]
	return n.sym, n.leaf
}

// Lengths maps every symbol to its code length.
func (cb *Codebook) Lengths() map[Symbol]int {
	out := make(map[Symbol]int, len(cb.codes))
	for s, c := range cb.codes {
		out[s] = len(c)
	}
	return out
}

// Equal reports whether both codebooks hold the same mapping, ignoring record order.
func (cb *Codebook) Equal(other *Codebook) bool {
	if cb.Len() != other.Len() {
		return false
	}
	for s, c := range cb.codes {
		if oc, ok := other.codes[s]; !ok || oc != c {
			return false
		}
	}
	return true
}

// WriteTo serializes one `<quoted symbol>\t<bits>` record per line.
func (cb *Codebook) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, s := range cb.order {
		n, err := fmt.Fprintf(bw, "%s\t%s\n", quoteSymbol(s), cb.codes[s])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

func (cb *Codebook) String() string {
	var sb strings.Builder
	_, _ = cb.WriteTo(&sb)
	return sb.String()
}

func quoteSymbol(s Symbol) string {
	return strconv.QuoteToASCII(string([]byte{s}))
}

// ParseCodebookString parses codebook text held in memory.
func ParseCodebookString(s string) (*Codebook, error) {
	return ParseCodebook(strings.NewReader(s))
}

// ParseCodebook reads records written by WriteTo. Record order is kept; blank lines are
// skipped.
func ParseCodebook(r io.Reader) (*Codebook, error) {
	var (
		order []Symbol
		codes = make(map[Symbol]string)
		seen  = make(map[string]int)
		line  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 2 {
			return nil, &MalformedCodebookError{line, fmt.Sprintf("want 2 tab separated fields, got %d", len(fields))}
		}
		unq, err := strconv.Unquote(fields[0])
		if err != nil || len(unq) != 1 {
			return nil, &MalformedCodebookError{line, fmt.Sprintf("bad symbol %s", fields[0])}
		}
		s := unq[0]
		code := fields[1]
		if code == "" {
			return nil, &MalformedCodebookError{line, "empty code"}
		}
		if strings.Trim(code, "01") != "" {
			return nil, &MalformedCodebookError{line, fmt.Sprintf("code %q has characters other than 0 and 1", code)}
		}
		if _, dup := codes[s]; dup {
			return nil, &MalformedCodebookError{line, fmt.Sprintf("symbol %s listed twice", fields[0])}
		}
		if prev, dup := seen[code]; dup {
			return nil, &MalformedCodebookError{line, fmt.Sprintf("code %s already used on line %d", code, prev)}
		}
		seen[code] = line
		codes[s] = code
		order = append(order, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read codebook: %w", err)
	}

	cb, err := newCodebook(order, codes)
	if err != nil {
		return nil, &MalformedCodebookError{line, err.Error()}
	}
	return cb, nil
}
