package io

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// quantity is an exact decimal that decodes from YAML, TOML and JSON numbers
// or strings.
type quantity struct {
	decimal.Decimal
}

func (q *quantity) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("empty number")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	q.Decimal = d
	return nil
}

func (q *quantity) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", n.Line)
	}
	if err := q.parse(n.Value); err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	return nil
}

func (q *quantity) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if s, err := strconv.Unquote(string(b)); err == nil {
		return q.parse(s)
	}
	return q.parse(string(b))
}

// UnmarshalTOML implements toml.Unmarshaler.
func (q *quantity) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case int64:
		q.Decimal = decimal.NewFromInt(v)
		return nil
	case float64:
		return q.parse(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		return q.parse(v)
	default:
		return fmt.Errorf("expected a number, got %T", v)
	}
}
