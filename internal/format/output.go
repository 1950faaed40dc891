package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formats lists the values accepted by Write.
var Formats = []string{"json", "edn", "text"}

// Write writes v in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text: fmt.Stringer values print their String(); anything else falls
//   back to JSON.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		if s, ok := v.(fmt.Stringer); ok {
			_, err := fmt.Fprintln(w, s.String())
			return err
		}
		return WriteJSON(w, v, pretty)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
