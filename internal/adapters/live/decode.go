package live

import (
	"encoding/json"
	"errors"
	"io"
)

// isDecodeError reports a frame that arrived intact but was not valid JSON for
// the target. gorilla reports an empty or truncated document as io.ErrUnexpectedEOF.
func isDecodeError(err error) bool {
	var se *json.SyntaxError
	var te *json.UnmarshalTypeError
	return errors.As(err, &se) || errors.As(err, &te) || errors.Is(err, io.ErrUnexpectedEOF)
}
