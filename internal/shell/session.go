// Package shell runs a line-oriented session against one in-memory
// collection, so a sequence of mints and queries can share state.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/provide-io/moodnft/pkg/nft"
	"github.com/provide-io/moodnft/pkg/nft/core"
	"github.com/provide-io/moodnft/pkg/nft/metadata"
)

// ErrUnknownCommand is returned for a command the session does not know.
var ErrUnknownCommand = errors.New("unknown command")

const helpText = `commands:
  mint OWNER   mint the next token to OWNER
  uri ID       print the token URI
  json ID      print the decoded metadata document
  mood ID      print the token mood
  owner ID     print the token owner
  count        print the next token id
  help         show this help
  exit         end the session
`

// Session executes commands against a collection.
type Session struct {
	coll   *nft.Collection
	out    io.Writer
	logger hclog.Logger
}

// NewSession returns a session writing results to out.
func NewSession(coll *nft.Collection, out io.Writer, logger hclog.Logger) *Session {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Session{coll: coll, out: out, logger: logger}
}

// Run reads commands from in until EOF, "exit", or ctx is done. Command
// failures are reported on the output and do not end the session.
func (s *Session) Run(ctx context.Context, in io.Reader, prompt string) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt != "" {
			fmt.Fprint(s.out, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		quit, err := s.Exec(scanner.Text())
		if err != nil {
			s.logger.Debug("Command failed", "line", scanner.Text(), "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line. quit is true for "exit" and "quit".
func (s *Session) Exec(line string) (quit bool, err error) {
	words, err := Split(line)
	if err != nil {
		return false, err
	}
	if len(words) == 0 || strings.HasPrefix(words[0], "#") {
		return false, nil
	}

	cmd, args := strings.ToLower(words[0]), words[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprint(s.out, helpText)
		return false, nil
	case "count":
		fmt.Fprintln(s.out, s.coll.TokenCounter())
		return false, nil
	case "mint":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: mint OWNER")
		}
		id, err := s.coll.Mint(args[0])
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, id)
		return false, nil
	case "uri", "json", "mood", "owner":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: %s ID", cmd)
		}
		id, err := ParseTokenID(args[0])
		if err != nil {
			return false, err
		}
		return false, s.query(cmd, id)
	default:
		return false, fmt.Errorf("%w %q (try help)", ErrUnknownCommand, words[0])
	}
}

func (s *Session) query(cmd string, id core.TokenID) error {
	switch cmd {
	case "mood":
		mood, err := s.coll.MoodOf(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, mood)
	case "owner":
		owner, err := s.coll.OwnerOf(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, owner)
	case "uri":
		uri, err := s.coll.TokenURI(id)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, uri)
	case "json":
		uri, err := s.coll.TokenURI(id)
		if err != nil {
			return err
		}
		doc, err := metadata.Decode(uri)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, PrettyDocument(doc))
	}
	return nil
}

// PrettyDocument indents a valid JSON document and returns anything else
// unchanged.
func PrettyDocument(doc []byte) string {
	if !gjson.ValidBytes(doc) {
		return string(doc)
	}
	return strings.TrimRight(gjson.GetBytes(doc, "@pretty").Raw, "\n")
}

// ParseTokenID parses a decimal token id.
func ParseTokenID(s string) (core.TokenID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token id %q: %w", s, err)
	}
	return core.TokenID(v), nil
}
