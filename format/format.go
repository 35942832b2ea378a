package format

import (
	"encoding"

	"github.com/Homlet/argand/plot"
)

// Encoder writes compiled equations in one output format.
type Encoder interface {
	encoding.TextMarshaler
	Encode(res *plot.Result) error
}
