package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches schemas by Schema.Name, which is unique per definition.
var compiled sync.Map // name -> *jsonschema.Schema

// validateResponse checks raw against s. A nil s accepts anything. Failures
// are *ErrInvalidResponse, with Parse set when raw is not JSON at all.
func validateResponse(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Parse: true, Err: fmt.Errorf("decode JSON: %w", err)}
	}
	sch, err := compile(s)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("does not match schema %q: %w", s.Name, err)}
	}
	return nil
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(s.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON document, not Go maps holding
	// []string and friends, so round-trip the definition.
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", s.Name, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", s.Name, err)
	}

	url := "mem://schemas/" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("load schema %q: %w", s.Name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", s.Name, err)
	}
	v, _ := compiled.LoadOrStore(s.Name, sch)
	return v.(*jsonschema.Schema), nil
}

// cleanJSON trims whitespace and unwraps a Markdown code fence, with or
// without an info string such as "json".
func cleanJSON(text string) json.RawMessage {
	s := strings.TrimSpace(text)
	rest, fenced := strings.CutPrefix(s, "```")
	if !fenced {
		return json.RawMessage(s)
	}
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[i+1:]
	} else {
		rest = strings.TrimPrefix(rest, "json")
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "```")
	return json.RawMessage(strings.TrimSpace(rest))
}
