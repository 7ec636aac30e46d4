package shell

import (
	"strings"

	"github.com/josephlewis42/rsh/core/growbuf"
)

// Delimiters separate tokens on a command line.
const Delimiters = " \t\r\n\a"

// Tokenize splits line on runs of Delimiters. Blank lines have no tokens.
func Tokenize(line string, opts growbuf.Options) ([]string, error) {
	tokens := growbuf.NewStrings(opts)

	start := -1
	for i := 0; i <= len(line); i++ {
		if i < len(line) && strings.IndexByte(Delimiters, line[i]) < 0 {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 {
			if err := tokens.Append(line[start:i]); err != nil {
				return nil, err
			}
			start = -1
		}
	}

	return tokens.Slice(), nil
}
