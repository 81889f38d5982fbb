// Package dataset holds the in-memory row model shared by the decoders, the
// store and the analysis code, plus the coercion rules used to read numbers
// and dates out of loosely typed cells.
package dataset

// Dataset is an ordered sequence of rows. It is replaced wholesale on every
// load and never mutated in place by readers.
type Dataset []Row

// Columns returns the keys of the first row. Every downstream consumer uses
// this as the working column set: keys that only appear in later rows are
// ignored and keys missing from later rows read as null.
func (d Dataset) Columns() []string {
	if len(d) == 0 {
		return []string{}
	}
	return d[0].Keys()
}

// Head returns at most n leading rows without copying.
func (d Dataset) Head(n int) Dataset {
	if n < 0 || n >= len(d) {
		return d
	}
	return d[:n]
}

// HasColumn reports whether name is part of the working column set.
func (d Dataset) HasColumn(name string) bool {
	if len(d) == 0 {
		return false
	}
	_, ok := d[0].Lookup(name)
	return ok
}
