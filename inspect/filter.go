package inspect

import (
	"bytes"
	"compress/zlib"
	"encoding/ascii85"
	"encoding/hex"
	"fmt"
	"io"
)

// Decode returns the data of s with its filter chain removed.
func Decode(s Stream) ([]byte, error) {
	var filters []Name
	switch f := s.Dict["Filter"].(type) {
	case nil:
		return s.Raw, nil
	case Name:
		filters = []Name{f}
	case Array:
		for _, o := range f {
			n, ok := o.(Name)
			if !ok {
				return nil, fmt.Errorf("inspect: filter array holds %T", o)
			}
			filters = append(filters, n)
		}
	default:
		return nil, fmt.Errorf("inspect: filter is %T", f)
	}

	data := s.Raw
	for _, f := range filters {
		var err error
		switch f {
		case "FlateDecode":
			data, err = inflate(data)
		case "ASCIIHexDecode":
			data, err = unhexStream(data)
		case "ASCII85Decode":
			data, err = un85(data)
		default:
			err = fmt.Errorf("unsupported filter")
		}
		if err != nil {
			return nil, fmt.Errorf("inspect: /%s: %w", f, err)
		}
	}
	return data, nil
}

func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func unhexStream(data []byte) ([]byte, error) {
	if i := bytes.IndexByte(data, '>'); i >= 0 {
		data = data[:i]
	}
	clean := bytes.Map(func(r rune) rune {
		if r < 0x80 && isSpace(byte(r)) {
			return -1
		}
		return r
	}, data)
	if len(clean)%2 == 1 {
		clean = append(clean, '0')
	}
	out := make([]byte, hex.DecodedLen(len(clean)))
	_, err := hex.Decode(out, clean)
	return out, err
}

func un85(data []byte) ([]byte, error) {
	if i := bytes.Index(data, []byte("~>")); i >= 0 {
		data = data[:i]
	}
	return io.ReadAll(ascii85.NewDecoder(bytes.NewReader(data)))
}
