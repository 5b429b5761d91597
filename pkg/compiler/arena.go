package compiler

// StringPool interns strings so every node value with the same text shares
// one backing string. Handles are ordinary Go strings and stay valid for
// the pool's whole lifetime; growth never invalidates them.
type StringPool struct {
	strings map[string]string
	bytes   int
}

func NewStringPool() *StringPool {
	return &StringPool{strings: make(map[string]string)}
}

// Intern returns the canonical copy of s, storing it on first sight.
func (p *StringPool) Intern(s string) string {
	if c, ok := p.strings[s]; ok {
		return c
	}
	p.strings[s] = s
	p.bytes += len(s)
	return s
}

// Count returns the number of distinct interned strings.
func (p *StringPool) Count() int { return len(p.strings) }

// Bytes returns the total size of all interned strings.
func (p *StringPool) Bytes() int { return p.bytes }

// Reset discards all interned strings.
func (p *StringPool) Reset() {
	p.strings = make(map[string]string)
	p.bytes = 0
}

const arenaBlockSize = 1024 // nodes per block

// Arena bump-allocates AST nodes from chained fixed-size blocks. Blocks are
// never relocated, so node pointers stay valid across growth; individual
// nodes are never freed, the whole arena is reset at once.
type Arena struct {
	pool   *StringPool
	blocks [][]Node
	used   int // nodes handed out since the last reset
}

func NewArena() *Arena {
	return &Arena{pool: NewStringPool()}
}

// Pool returns the arena's string pool.
func (a *Arena) Pool() *StringPool { return a.pool }

// Used returns the number of nodes allocated since the last reset.
// It is non-decreasing between resets.
func (a *Arena) Used() int { return a.used }

// Reset drops all blocks and interned strings at once.
func (a *Arena) Reset() {
	a.blocks = nil
	a.used = 0
	a.pool.Reset()
}

func (a *Arena) alloc() *Node {
	if len(a.blocks) == 0 || len(a.blocks[len(a.blocks)-1]) == cap(a.blocks[len(a.blocks)-1]) {
		a.blocks = append(a.blocks, make([]Node, 0, arenaBlockSize))
	}
	blk := &a.blocks[len(a.blocks)-1]
	*blk = append(*blk, Node{})
	a.used++
	return &(*blk)[len(*blk)-1]
}

// NewNode returns a zeroed node of the given kind with no children.
func (a *Arena) NewNode(kind NodeKind) *Node {
	n := a.alloc()
	n.Kind = kind
	return n
}

// NewNodeValue returns a node of the given kind with value interned into
// the arena's string pool.
func (a *Arena) NewNodeValue(kind NodeKind, value string) *Node {
	n := a.alloc()
	n.Kind = kind
	n.Value = a.pool.Intern(value)
	return n
}

// CopyNode deep-clones the subtree rooted at n into the same arena.
func (a *Arena) CopyNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := a.alloc()
	*c = *n
	c.Children = nil
	for _, child := range n.Children {
		c.Children = append(c.Children, a.CopyNode(child))
	}
	return c
}
