package model

// Page describes a slice of an ordered result set.  A zero Size means
// the page is unbounded and From is ignored.
type Page struct {
	From int // row offset
	Size int // maximum number of rows, 0 for no limit
}

// Unbounded reports whether the page places no limit on the result.
func (p Page) Unbounded() bool { return p.Size <= 0 }

// Window returns the half-open index range [lo, hi) selected by the page
// over a result of length n.
func (p Page) Window(n int) (lo, hi int) {
	if p.Unbounded() {
		return 0, n
	}
	lo = p.From
	if lo > n {
		lo = n
	}
	// Compared as a remainder so a huge Size cannot overflow lo+Size.
	if p.Size >= n-lo {
		return lo, n
	}
	return lo, lo + p.Size
}
