package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/radin/project"
)

// Encoder writes one parse result per call to Encode.
type Encoder interface {
	encoding.TextMarshaler
	Encode(r project.Result) error
}

type Options struct {
	// Tree includes the syntax tree, not only the diagnostics.
	Tree      bool
	Positions bool
	Color     bool
}

// New returns the encoder called name: text, json or table.
func New(name string, w io.Writer, opts Options) (Encoder, error) {
	switch name {
	case "text", "":
		return NewLineEncoder(w, opts), nil
	case "json":
		return NewJSONEncoder(w, opts), nil
	case "table":
		return NewTableEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", name)
	}
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
