package netx

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// newline-delimited JSON codec: one UTF-8 object per line, no length prefix.

// ErrBadFrame marks a line that did not decode. The stream stays usable;
// the reader has already advanced past the bad line.
var ErrBadFrame = errors.New("netx: malformed frame")

func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Decoder reassembles frames that arrive split across reads and splits
// reads that carry more than one frame.
type Decoder struct {
	r *bufio.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next decodes the next frame into v. It returns ErrBadFrame (wrapped)
// for an undecodable line and io.EOF on clean stream closure. A trailing
// partial line at EOF is discarded, matching the framing contract that a
// frame only exists once its newline has arrived.
func (d *Decoder) Next(v any) error {
	line, err := d.r.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return io.EOF
		}
		return err
	}
	line = bytes.TrimRight(line, "\r\n")
	if len(bytes.TrimSpace(line)) == 0 {
		return fmt.Errorf("%w: empty line", ErrBadFrame)
	}
	if err := json.Unmarshal(line, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	return nil
}
