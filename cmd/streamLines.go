package cmd

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// streamLines calls fn for every line read from r as soon as it is complete,
// without a line length limit. A trailing line lacking a newline is still
// delivered. Line terminators (\n or \r\n) are stripped.
func streamLines(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
