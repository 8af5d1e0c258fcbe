// Package recipe loads filter selections from YAML files.
//
// A recipe lists the filters to apply and their parameters:
//
//	hsl:
//	  hue: 90
//	  saturation: -20
//	contrast: 25
//	white_balance: true
//	gamma: 2.2
//	threshold: 0.5
//	greyscale: true
//	sepia: true
//	inverse: true
//
// Keys that are absent (or false) leave the filter disabled. The order of
// the keys does not matter; filters always run in their canonical order.
package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/bmpedit/internal/filters"
)

type HSL struct {
	Hue        float64 `yaml:"hue,omitempty"`
	Saturation float64 `yaml:"saturation,omitempty"`
	Lightness  float64 `yaml:"lightness,omitempty"`
}

type Recipe struct {
	HSL          *HSL     `yaml:"hsl,omitempty"`
	Contrast     *float64 `yaml:"contrast,omitempty"`
	WhiteBalance bool     `yaml:"white_balance,omitempty"`
	Gamma        *float64 `yaml:"gamma,omitempty"`
	Threshold    *float64 `yaml:"threshold,omitempty"`
	Greyscale    bool     `yaml:"greyscale,omitempty"`
	Sepia        bool     `yaml:"sepia,omitempty"`
	Inverse      bool     `yaml:"inverse,omitempty"`
}

// Parse decodes a recipe. Unknown keys are an error.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.UnmarshalStrict(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	return &r, nil
}

// Load reads and parses the recipe file at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file '%s': %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Pipeline builds a validated pipeline from the recipe.
func (r *Recipe) Pipeline() (*filters.Pipeline, error) {
	p := filters.NewPipeline()
	if r.HSL != nil {
		p.Add(filters.HSLStep{Hue: r.HSL.Hue, Saturation: r.HSL.Saturation, Lightness: r.HSL.Lightness})
	}
	if r.Contrast != nil {
		p.Add(filters.ContrastStep{Contrast: *r.Contrast})
	}
	if r.WhiteBalance {
		p.Add(filters.WhiteBalanceStep{})
	}
	if r.Gamma != nil {
		p.Add(filters.GammaStep{Gamma: *r.Gamma})
	}
	if r.Threshold != nil {
		p.Add(filters.ThresholdStep{Threshold: *r.Threshold})
	}
	if r.Greyscale {
		p.Add(filters.GreyscaleStep{})
	}
	if r.Sepia {
		p.Add(filters.SepiaStep{})
	}
	if r.Inverse {
		p.Add(filters.InverseStep{})
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// FromPipeline describes p as a recipe.
func FromPipeline(p *filters.Pipeline) *Recipe {
	var r Recipe
	for _, s := range p.Steps() {
		switch s := s.(type) {
		case filters.HSLStep:
			r.HSL = &HSL{Hue: s.Hue, Saturation: s.Saturation, Lightness: s.Lightness}
		case filters.ContrastStep:
			r.Contrast = &s.Contrast
		case filters.WhiteBalanceStep:
			r.WhiteBalance = true
		case filters.GammaStep:
			r.Gamma = &s.Gamma
		case filters.ThresholdStep:
			r.Threshold = &s.Threshold
		case filters.GreyscaleStep:
			r.Greyscale = true
		case filters.SepiaStep:
			r.Sepia = true
		case filters.InverseStep:
			r.Inverse = true
		}
	}
	return &r
}

// Save writes the recipe to path as YAML.
func (r *Recipe) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file '%s': %w", path, err)
	}
	return nil
}
