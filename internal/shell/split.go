package shell

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrUnclosedQuote  = errors.New("unclosed quote")
	ErrTrailingEscape = errors.New("trailing escape character")
)

// Split breaks a command line into words. Whitespace separates words,
// single quotes keep their contents literally, double quotes honor \" and
// \\ escapes, and an unquoted backslash escapes the next character. A
// quoted empty string yields an empty word so `mint ""` reaches the
// receiver check.
func Split(line string) ([]string, error) {
	var (
		words  []string
		cur    strings.Builder
		quote  rune
		inWord bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch {
		case quote == '\'':
			if ch == '\'' {
				quote = 0
			} else {
				cur.WriteRune(ch)
			}

		case quote == '"':
			switch ch {
			case '"':
				quote = 0
			case '\\':
				if i+1 >= len(runes) {
					return nil, ErrTrailingEscape
				}
				i++
				if next := runes[i]; next != '"' && next != '\\' {
					cur.WriteRune('\\')
				}
				cur.WriteRune(runes[i])
			default:
				cur.WriteRune(ch)
			}

		case ch == '\\':
			if i+1 >= len(runes) {
				return nil, ErrTrailingEscape
			}
			i++
			cur.WriteRune(runes[i])
			inWord = true

		case ch == '\'' || ch == '"':
			quote = ch
			inWord = true

		case unicode.IsSpace(ch):
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}

		default:
			cur.WriteRune(ch)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("%w: %c", ErrUnclosedQuote, quote)
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
