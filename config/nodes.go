package config

import (
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termplot/numfmt"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagStr   = "!!str"
	tagFloat = "!!float"
)

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull
}

// number reads n exactly from its source text. Anything unparsable reads as 0
func (ld *loader) number(key string, n *yaml.Node) *big.Rat {
	if n.Kind == yaml.ScalarNode && !isNull(n) {
		if r, err := numfmt.Parse(n.Value); err == nil {
			return r
		}
	}
	ld.log.Info("value is not a number, reading as zero", "key", keyName(key), "line", n.Line, "value", n.Value)
	return new(big.Rat)
}

// optNumber is number with null meaning unset
func (ld *loader) optNumber(key string, n *yaml.Node) *big.Rat {
	if isNull(n) {
		return nil
	}
	return ld.number(key, n)
}

func integer(key string, n *yaml.Node) (int, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagInt {
		return 0, typeError(key, "integer", n)
	}
	v, err := strconv.Atoi(n.Value)
	if err != nil {
		// yaml also accepts 0x and 0o forms
		var i int64
		if derr := n.Decode(&i); derr != nil {
			return 0, typeError(key, "integer", n)
		}
		v = int(i)
	}
	return v, nil
}

// count is a non-negative integer
func count(key string, n *yaml.Node) (int, error) {
	v, err := integer(key, n)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, &TypeError{Key: key, Expected: "non-negative integer", Got: n.Value, Line: n.Line}
	}
	return v, nil
}

func str(key string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagStr {
		return "", typeError(key, "string", n)
	}
	return n.Value, nil
}

func boolean(key string, n *yaml.Node) (bool, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagBool {
		return false, typeError(key, "boolean", n)
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, typeError(key, "boolean", n)
	}
	return b, nil
}

// tuple is a sequence of exactly arity entries
func tuple(key string, n *yaml.Node, arity int) ([]*yaml.Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, typeError(key, "array of "+strconv.Itoa(arity), n)
	}
	if len(n.Content) != arity {
		return nil, &ArityError{Key: key, Want: arity, Got: len(n.Content), Line: n.Line}
	}
	return n.Content, nil
}

func stringList(key string, n *yaml.Node) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, typeError(key, "array of strings", n)
	}
	out := make([]string, len(n.Content))
	for i, it := range n.Content {
		s, err := str(key, it)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func typeError(key, expected string, n *yaml.Node) *TypeError {
	return &TypeError{Key: key, Expected: expected, Got: describe(n), Line: n.Line}
}

// describe names the kind of n the way a JSON author would
func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.AliasNode:
		return "alias"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case tagNull:
			return "null"
		case tagBool:
			return "boolean"
		case tagInt, tagFloat:
			return "number"
		case tagStr:
			return "string"
		}
		return n.ShortTag()
	}
	return "nothing"
}
