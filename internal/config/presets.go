package config

import (
	"sort"

	"github.com/san-kum/mandelzoom/internal/fractal"
)

// Landmarks are well known regions of the set.
var Landmarks = map[string]fractal.Region{
	// dense filaments and repeating curls
	"seahorse": {Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15},
	// large bulb with trunk-like tendrils
	"elephant":        {Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02},
	"spiral_minibrot": {Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325},
	"triple_spiral":   {Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980},
	"dragon":          {Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850},
	"minibrot_spiral": {Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220},
}

// landmark budgets; deeper regions need more iterations to resolve
var landmarkBudget = map[string]int{
	"seahorse":        500,
	"elephant":        500,
	"spiral_minibrot": 1500,
	"triple_spiral":   1000,
	"dragon":          1000,
	"minibrot_spiral": 1500,
}

var Presets = map[string]func(*Config){
	// 12 megapixels of the whole set
	"classic": func(c *Config) {},
	"quick": func(c *Config) {
		c.Render.Resolution = 480_000
		c.Color.Budget = 100
	},
	"radial": func(c *Config) {
		c.Color.Mode = string(fractal.ModeRadialFlat)
		c.Render.CenterRe, c.Render.CenterIm = 0, 0
		c.Render.ViewWidth, c.Render.ViewHeight = 2.5, 2.5
		c.Render.Resolution = 1_000_000
	},
}

func init() {
	for name, r := range Landmarks {
		r, budget := r, landmarkBudget[name]
		Presets[name] = func(c *Config) {
			vp, err := fractal.FromRegion(r)
			if err != nil {
				return
			}
			c.SetViewport(vp)
			c.Render.Resolution = 4_000_000
			c.Color.Budget = budget
		}
	}
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Name = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
