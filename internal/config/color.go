package config

import (
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandelzoom/internal/fractal"
)

// Color is an RGB triple of fractions in [0, 1]. In yaml it is written
// either as a sequence [r, g, b] or as a hex string "#rrggbb".
type Color [3]float64

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		hc, err := colorful.Hex(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: color %q: %w", node.Line, node.Value, err)
		}
		*c = Color{hc.R, hc.G, hc.B}
		return nil
	case yaml.SequenceNode:
		var v []float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		if len(v) != 3 {
			return fmt.Errorf("line %d: color needs 3 components, got %d", node.Line, len(v))
		}
		*c = Color{v[0], v[1], v[2]}
		return nil
	}
	return fmt.Errorf("line %d: color must be a hex string or [r, g, b]", node.Line)
}

func (c Color) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range c {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(v, 'g', -1, 64)})
	}
	return node, nil
}

func (c Color) RGB() fractal.RGB {
	return fractal.RGB{R: c[0], G: c[1], B: c[2]}
}

func (c Color) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c[0], G: c[1], B: c[2]}.Clamped().Hex()
}
