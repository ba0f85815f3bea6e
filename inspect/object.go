// Package inspect reads PDF files back into pages, text runs and document
// information.
//
// It understands the subset of the format that docstamp and other
// gofpdf-based producers write: a classic cross-reference table, a flat or
// nested page tree, Flate-compressed content streams, and simple or
// Identity-H composite fonts. It is used to verify rendered documents and
// to back the inspect command; it is not a general-purpose PDF reader.
package inspect

import "fmt"

// Object is any value that can appear in a PDF body.
type Object interface {
	isObject()
}

type (
	// Null is the PDF null object.
	Null struct{}
	// Bool is a PDF boolean.
	Bool bool
	// Int is a PDF integer.
	Int int64
	// Real is a PDF real number.
	Real float64
	// Name is a PDF name without its leading slash.
	Name string
	// String holds the raw bytes of a literal or hexadecimal string.
	String []byte
	// Array is a PDF array.
	Array []Object
	// Dict is a PDF dictionary.
	Dict map[Name]Object
	// Ref is an indirect reference such as "12 0 R".
	Ref struct {
		Num, Gen int
	}
	// Stream is a stream dictionary with its still-encoded data.
	Stream struct {
		Dict Dict
		Raw  []byte
	}
)

func (Null) isObject()   {}
func (Bool) isObject()   {}
func (Int) isObject()    {}
func (Real) isObject()   {}
func (Name) isObject()   {}
func (String) isObject() {}
func (Array) isObject()  {}
func (Dict) isObject()   {}
func (Ref) isObject()    {}
func (Stream) isObject() {}

func (r Ref) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Name returns the name stored under key, or "".
func (d Dict) Name(key Name) Name {
	n, _ := d[key].(Name)
	return n
}

// Int returns the integer stored under key.
func (d Dict) Int(key Name) (int64, bool) {
	switch v := d[key].(type) {
	case Int:
		return int64(v), true
	case Real:
		return int64(v), true
	}
	return 0, false
}

// Number converts an Int or Real to float64.
func Number(o Object) (float64, bool) {
	switch v := o.(type) {
	case Int:
		return float64(v), true
	case Real:
		return float64(v), true
	}
	return 0, false
}
