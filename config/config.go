// Package config builds a plot.Graph from a JSON or YAML document.
//
// The document is either an array of numbers, read as 1d_data, or an object
// whose keys map onto the Graph setters. Numbers are read leniently: a numeric
// scalar or a decimal string is parsed exactly and anything else reads as 0.
// Every other key is type-checked.
package config

import (
	"io"
	"math/big"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termplot/numfmt"
	"github.com/lixenwraith/termplot/plot"
	"github.com/lixenwraith/termplot/render"
	"github.com/lixenwraith/termplot/terminal"
)

// Option adjusts how a document is loaded
type Option func(*loader)

// WithLogger routes lenient-number diagnostics and the graph's own log to l
func WithLogger(l logr.Logger) Option {
	return func(ld *loader) { ld.log = l }
}

// Load reads a document from r
func Load(r io.Reader, opts ...Option) (*plot.Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	return Parse(data, opts...)
}

// Parse decodes a document. JSON is accepted as YAML
func Parse(data []byte, opts ...Option) (*plot.Graph, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse document")
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, errors.New("empty document")
		}
		root = root.Content[0]
	}

	ld := &loader{log: logr.Discard()}
	for _, o := range opts {
		o(ld)
	}
	ld.g = plot.New().SetLogger(ld.log)

	switch root.Kind {
	case yaml.SequenceNode:
		if err := ld.oneD("", root); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		if err := ld.object(root); err != nil {
			return nil, err
		}
	default:
		return nil, typeError("", "object or array", root)
	}
	return ld.g, nil
}

type loader struct {
	g   *plot.Graph
	log logr.Logger

	// color_mode and html_prefix combine, so they apply after every key is read
	mode, htmlPrefix string
	modeNode         *yaml.Node
}

type handler func(ld *loader, key string, n *yaml.Node) error

var handlers map[string]handler

func init() {
	handlers = map[string]handler{
		"1d_data":         (*loader).oneD,
		"1d_labeled_data": (*loader).oneDLabeled,
		"2d_data":         (*loader).twoD,
		"y_min": func(ld *loader, key string, n *yaml.Node) error {
			ld.g.SetYMin(ld.optNumber(key, n))
			return nil
		},
		"y_max": func(ld *loader, key string, n *yaml.Node) error {
			ld.g.SetYMax(ld.optNumber(key, n))
			return nil
		},
		"y_range": func(ld *loader, key string, n *yaml.Node) error {
			items, err := tuple(key, n, 2)
			if err != nil {
				return err
			}
			ld.g.SetYRange(ld.number(key, items[0]), ld.number(key, items[1]))
			return nil
		},
		"pretty_y": func(ld *loader, key string, n *yaml.Node) error {
			ld.g.SetPrettyY(ld.optNumber(key, n))
			return nil
		},
		"plot_width":     intSetter((*plot.Graph).SetPlotWidth),
		"plot_height":    intSetter((*plot.Graph).SetPlotHeight),
		"x_label_margin": intSetter((*plot.Graph).SetXLabelMargin),
		"y_label_margin": intSetter((*plot.Graph).SetYLabelMargin),
		"block_width":    intSetter((*plot.Graph).SetBlockWidth),
		"paddings": func(ld *loader, key string, n *yaml.Node) error {
			items, err := tuple(key, n, 4)
			if err != nil {
				return err
			}
			var p [4]int
			for i, it := range items {
				if p[i], err = count(key, it); err != nil {
					return err
				}
			}
			ld.g.SetPaddings(render.Padding{Top: p[0], Bottom: p[1], Left: p[2], Right: p[3]})
			return nil
		},
		"title":        strSetter((*plot.Graph).SetTitle),
		"x_axis_label": strSetter((*plot.Graph).SetXAxisLabel),
		"y_axis_label": strSetter((*plot.Graph).SetYAxisLabel),
		"big_title": func(ld *loader, key string, n *yaml.Node) error {
			b, err := boolean(key, n)
			if err != nil {
				return err
			}
			ld.g.SetBigTitle(b)
			return nil
		},
		"skip_range":      (*loader).skipRange,
		"skip_skip_range": (*loader).skipSkipRange,
		"intervals":       (*loader).intervals,
		"color_mode": func(ld *loader, key string, n *yaml.Node) error {
			s, err := str(key, n)
			if err != nil {
				return err
			}
			ld.mode, ld.modeNode = s, n
			return nil
		},
		"html_prefix": func(ld *loader, key string, n *yaml.Node) error {
			s, err := str(key, n)
			if err != nil {
				return err
			}
			ld.htmlPrefix = s
			return nil
		},
		"primary_color": colorSetter((*plot.Graph).SetPrimaryColor),
		"title_color":   colorSetter((*plot.Graph).SetTitleColor),
		"y_label_format": func(ld *loader, key string, n *yaml.Node) error {
			s, err := str(key, n)
			if err != nil {
				return err
			}
			f, err := numfmt.ParseFormatter(s)
			if err != nil {
				return &TypeError{Key: key, Expected: "default, si or comma", Got: s, Line: n.Line}
			}
			ld.g.SetYLabelFormatter(f)
			return nil
		},
	}
}

func (ld *loader) object(root *yaml.Node) error {
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		h, ok := handlers[k.Value]
		if !ok {
			return &UnknownKeyError{Key: k.Value, Line: k.Line}
		}
		if err := h(ld, k.Value, v); err != nil {
			return err
		}
	}

	if ld.modeNode != nil {
		m, err := terminal.ParseColorMode(ld.mode, ld.htmlPrefix)
		if err != nil {
			return &ColorError{Key: "color_mode", Value: ld.mode, Line: ld.modeNode.Line, Err: err}
		}
		ld.g.SetColorMode(m)
	} else if ld.htmlPrefix != "" {
		ld.g.SetColorMode(terminal.HTML(ld.htmlPrefix))
	}
	return nil
}

func (ld *loader) oneD(key string, n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return typeError(key, "array of numbers", n)
	}
	values := make([]*big.Rat, len(n.Content))
	for i, it := range n.Content {
		values[i] = ld.number(key, it)
	}
	ld.g.Set1DData(values)
	return nil
}

func (ld *loader) oneDLabeled(key string, n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return typeError(key, "array of [label, number] pairs", n)
	}
	pts := make([]plot.Point, len(n.Content))
	for i, it := range n.Content {
		pair, err := tuple(key, it, 2)
		if err != nil {
			return err
		}
		label, err := str(key, pair[0])
		if err != nil {
			return err
		}
		pts[i] = plot.Point{Label: label, Value: ld.number(key, pair[1])}
	}
	ld.g.Set1DLabeledData(pts)
	return nil
}

func (ld *loader) twoD(key string, n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return typeError(key, "object with points, x_labels and y_labels", n)
	}
	var glyphs []plot.Glyph
	var xLabels, yLabels []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		sub := key + "." + k.Value
		var err error
		switch k.Value {
		case "points":
			glyphs, err = points(sub, v)
		case "x_labels":
			xLabels, err = stringList(sub, v)
		case "y_labels":
			yLabels, err = stringList(sub, v)
		default:
			err = &UnknownKeyError{Key: sub, Line: k.Line}
		}
		if err != nil {
			return err
		}
	}
	ld.g.Set2DData(glyphs, xLabels, yLabels)
	return nil
}

func points(key string, n *yaml.Node) ([]plot.Glyph, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, typeError(key, "array of [x, y, character]", n)
	}
	out := make([]plot.Glyph, 0, len(n.Content))
	for _, it := range n.Content {
		p, err := tuple(key, it, 3)
		if err != nil {
			return nil, err
		}
		x, err := integer(key, p[0])
		if err != nil {
			return nil, err
		}
		y, err := integer(key, p[1])
		if err != nil {
			return nil, err
		}
		s, err := str(key, p[2])
		if err != nil {
			return nil, err
		}
		rs := []rune(s)
		if len(rs) != 1 {
			return nil, &TypeError{Key: key, Expected: "single character", Got: strconv.Quote(s), Line: p[2].Line}
		}
		out = append(out, plot.Glyph{X: x, Y: y, Rune: rs[0]})
	}
	return out, nil
}

// skipRange: null disables skipping, "auto" or "none" name a policy, and a
// [from, to] pair cuts a manual range
func (ld *loader) skipRange(key string, n *yaml.Node) error {
	if isNull(n) {
		ld.g.SetSkipRange(plot.SkipNone())
		return nil
	}
	if n.Kind == yaml.ScalarNode {
		switch n.Value {
		case "auto", "automatic":
			ld.g.SetSkipRange(plot.SkipAuto())
			return nil
		case "none", "disabled":
			ld.g.SetSkipRange(plot.SkipNone())
			return nil
		}
		return typeError(key, "null, \"auto\", \"none\" or [from, to]", n)
	}
	items, err := tuple(key, n, 2)
	if err != nil {
		return err
	}
	ld.g.SetSkipRange(plot.SkipBetween(ld.optNumber(key, items[0]), ld.optNumber(key, items[1])))
	return nil
}

// skipSkipRange is [from, to] where either end may be null for an open window
func (ld *loader) skipSkipRange(key string, n *yaml.Node) error {
	items, err := tuple(key, n, 2)
	if err != nil {
		return err
	}
	ld.g.SetSkipSkipRange(ld.optNumber(key, items[0]), ld.optNumber(key, items[1]))
	return nil
}

func (ld *loader) intervals(key string, n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return typeError(key, "array of [start, end, label]", n)
	}
	for _, it := range n.Content {
		p, err := tuple(key, it, 3)
		if err != nil {
			return err
		}
		start, err := integer(key, p[0])
		if err != nil {
			return err
		}
		end, err := integer(key, p[1])
		if err != nil {
			return err
		}
		label, err := str(key, p[2])
		if err != nil {
			return err
		}
		ld.g.AddLabeledInterval(start, end, label)
	}
	return nil
}

func intSetter(set func(*plot.Graph, int) *plot.Graph) handler {
	return func(ld *loader, key string, n *yaml.Node) error {
		v, err := count(key, n)
		if err != nil {
			return err
		}
		set(ld.g, v)
		return nil
	}
}

func strSetter(set func(*plot.Graph, string) *plot.Graph) handler {
	return func(ld *loader, key string, n *yaml.Node) error {
		s, err := str(key, n)
		if err != nil {
			return err
		}
		set(ld.g, s)
		return nil
	}
}

func colorSetter(set func(*plot.Graph, terminal.Color) *plot.Graph) handler {
	return func(ld *loader, key string, n *yaml.Node) error {
		s, err := str(key, n)
		if err != nil {
			return err
		}
		c, err := terminal.ParseColor(s)
		if err != nil {
			return &ColorError{Key: key, Value: s, Line: n.Line, Err: err}
		}
		set(ld.g, c)
		return nil
	}
}
