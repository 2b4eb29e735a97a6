package ansiparser

// Params holds the numeric parameters of a single CSI sequence. Sub-params
// joined with ':' (e.g. the truecolor form "38:2:0:255:0:0") are tracked via
// subs so callers can tell a colon-continuation from a fresh ';'-separated
// parameter, mirroring the Param(i, default) query idiom of charmbracelet/x/ansi
// that the original teacher's VT layer was built against.
type Params struct {
	vals []int
	subs []bool
}

// Param returns the value at index i, or def if it was omitted (an empty
// field between two ';'/':' or a field never typed at all). hasMore reports
// whether another parameter follows at i+1.
func (p Params) Param(i, def int) (val int, hasMore bool) {
	if i < 0 || i >= len(p.vals) {
		return def, false
	}
	v := p.vals[i]
	if v < 0 {
		v = def
	}
	return v, i+1 < len(p.vals)
}

// IsSub reports whether the parameter at index i was introduced by ':'
// rather than ';' — i.e. it is a sub-parameter of the one before it.
func (p Params) IsSub(i int) bool {
	if i <= 0 || i-1 >= len(p.subs) {
		return false
	}
	// subs[k] records that a ':' followed parameter k.
	return p.subs[i-1]
}

// Len reports how many parameter slots were parsed, including omitted ones.
func (p Params) Len() int { return len(p.vals) }
