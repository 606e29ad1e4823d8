package metadata

import (
	"fmt"
	"strconv"
	"strings"

	nfterrors "github.com/provide-io/moodnft/pkg/nft/errors"
)

// Record is the metadata document of one token.
type Record struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Attributes  []Attribute `json:"attributes"`
	Image       string      `json:"image"`
}

// Attribute is one trait entry.
type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     int    `json:"value"`
}

// serialize is the only place that turns a Record into text. Name and
// Image are interpolated without escaping; validate must run first unless
// the encoder was built with WithUnguardedFields.
func (r Record) serialize() string {
	var b strings.Builder
	b.WriteString(`{"name":"`)
	b.WriteString(r.Name)
	b.WriteString(`","description":"`)
	b.WriteString(r.Description)
	b.WriteString(`","attributes":[`)
	for i, attr := range r.Attributes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"trait_type":"`)
		b.WriteString(attr.TraitType)
		b.WriteString(`","value":`)
		b.WriteString(strconv.Itoa(attr.Value))
		b.WriteByte('}')
	}
	b.WriteString(`],"image":"`)
	b.WriteString(r.Image)
	b.WriteString(`"}`)
	return b.String()
}

func (r Record) validate() error {
	if err := checkField("name", r.Name); err != nil {
		return err
	}
	return checkField("image", r.Image)
}

func checkField(field, value string) error {
	for i, ch := range value {
		if ch == '"' || ch == '\\' || ch < 0x20 {
			return fmt.Errorf("%w: %s has %q at offset %d", nfterrors.ErrMalformedEncodingInput, field, ch, i)
		}
	}
	return nil
}
