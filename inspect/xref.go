package inspect

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotPDF is returned for input that does not start with a PDF header.
var ErrNotPDF = errors.New("inspect: not a PDF file")

type xrefEntry struct {
	offset int64
	gen    int
}

// startXref returns the offset recorded after the last startxref keyword.
func startXref(data []byte) (int64, error) {
	tail := data[max(0, len(data)-1024):]
	i := bytes.LastIndex(tail, []byte("startxref"))
	if i < 0 {
		return 0, errors.New("inspect: startxref not found")
	}
	tok := newLexer(tail[i+len("startxref"):], false).token()
	off, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("inspect: startxref offset %q: %w", tok, err)
	}
	return off, nil
}

// readXref parses the cross-reference section at off and every section
// chained from it through /Prev. Later sections win.
func readXref(data []byte, off int64) (map[int]xrefEntry, Dict, error) {
	table := map[int]xrefEntry{}
	var trailer Dict
	seen := map[int64]bool{}
	for {
		if off < 0 || off >= int64(len(data)) {
			return nil, nil, fmt.Errorf("inspect: xref offset %d out of range", off)
		}
		if seen[off] {
			return nil, nil, fmt.Errorf("inspect: xref loop at offset %d", off)
		}
		seen[off] = true

		t, err := readSection(data[off:], table)
		if err != nil {
			return nil, nil, err
		}
		if trailer == nil {
			trailer = t
		}
		prev, ok := t.Int("Prev")
		if !ok {
			return table, trailer, nil
		}
		off = prev
	}
}

func readSection(data []byte, table map[int]xrefEntry) (Dict, error) {
	l := newLexer(data, true)
	if l.token() != "xref" {
		return nil, errors.New("inspect: cross-reference streams are not supported")
	}
	for {
		save := l.pos
		head := l.token()
		if head == "trailer" {
			break
		}
		if head == "" {
			return nil, errors.New("inspect: xref section has no trailer")
		}
		l.pos = save

		first, err1 := strconv.Atoi(l.token())
		count, err2 := strconv.Atoi(l.token())
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("inspect: bad xref subsection at offset %d", save)
		}
		for i := range count {
			off, err1 := strconv.ParseInt(l.token(), 10, 64)
			gen, err2 := strconv.Atoi(l.token())
			kind := l.token()
			if err1 != nil || err2 != nil || (kind != "n" && kind != "f") {
				return nil, fmt.Errorf("inspect: bad xref entry for object %d", first+i)
			}
			if _, ok := table[first+i]; ok || kind == "f" {
				continue
			}
			table[first+i] = xrefEntry{offset: off, gen: gen}
		}
	}

	o, err := l.object()
	if err != nil {
		return nil, fmt.Errorf("inspect: trailer: %w", err)
	}
	trailer, ok := o.(Dict)
	if !ok {
		return nil, errors.New("inspect: trailer is not a dictionary")
	}
	return trailer, nil
}
