package filters

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/anas-shakeel/bmpedit/internal/bmp"
)

// Kind identifies a filter. Kinds are declared in the order in which
// a Pipeline applies them.
type Kind int

const (
	KindHSL Kind = iota
	KindContrast
	KindWhiteBalance
	KindGamma
	KindThreshold
	KindGreyscale
	KindSepia
	KindInverse

	numKinds
)

var kindNames = [numKinds]string{
	KindHSL:          "hsl",
	KindContrast:     "contrast",
	KindWhiteBalance: "white-balance",
	KindGamma:        "gamma",
	KindThreshold:    "threshold",
	KindGreyscale:    "greyscale",
	KindSepia:        "sepia",
	KindInverse:      "inverse",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Step is one enabled filter together with its parameters.
type Step interface {
	Kind() Kind
	Validate() error
	Apply(g *bmp.Grid)
}

// RangeError reports a filter parameter outside of its domain.
type RangeError struct {
	Name     string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("the %s must be between %g and %g, inclusive (got %g)", e.Name, e.Min, e.Max, e.Value)
}

func checkRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return &RangeError{Name: name, Value: v, Min: lo, Max: hi}
	}
	return nil
}

// HSLStep shifts hue, saturation and lightness in a single pass.
type HSLStep struct {
	Hue        float64 // [-360, 360] degrees
	Saturation float64 // [-100, 100] percent
	Lightness  float64 // [-100, 100] percent
}

func (HSLStep) Kind() Kind { return KindHSL }

func (s HSLStep) Validate() error {
	return errors.Join(
		checkRange("hue shift", s.Hue, -360, 360),
		checkRange("saturation", s.Saturation, -100, 100),
		checkRange("lightness", s.Lightness, -100, 100),
	)
}

func (s HSLStep) Apply(g *bmp.Grid) { HueSaturationLightness(g, s.Hue, s.Saturation, s.Lightness) }

type ContrastStep struct {
	Contrast float64 // [-100, 100]
}

func (ContrastStep) Kind() Kind          { return KindContrast }
func (s ContrastStep) Validate() error   { return checkRange("contrast", s.Contrast, -100, 100) }
func (s ContrastStep) Apply(g *bmp.Grid) { Contrast(g, s.Contrast) }

type WhiteBalanceStep struct{}

func (WhiteBalanceStep) Kind() Kind        { return KindWhiteBalance }
func (WhiteBalanceStep) Validate() error   { return nil }
func (WhiteBalanceStep) Apply(g *bmp.Grid) { WhiteBalance(g) }

type GammaStep struct {
	Gamma float64 // [0.01, 7.99]
}

func (GammaStep) Kind() Kind          { return KindGamma }
func (s GammaStep) Validate() error   { return checkRange("gamma value", s.Gamma, 0.01, 7.99) }
func (s GammaStep) Apply(g *bmp.Grid) { Gamma(g, s.Gamma) }

type ThresholdStep struct {
	Threshold float64 // [0, 1]
}

func (ThresholdStep) Kind() Kind          { return KindThreshold }
func (s ThresholdStep) Validate() error   { return checkRange("threshold", s.Threshold, 0, 1) }
func (s ThresholdStep) Apply(g *bmp.Grid) { Threshold(g, s.Threshold) }

type GreyscaleStep struct{}

func (GreyscaleStep) Kind() Kind        { return KindGreyscale }
func (GreyscaleStep) Validate() error   { return nil }
func (GreyscaleStep) Apply(g *bmp.Grid) { Greyscale(g) }

type SepiaStep struct{}

func (SepiaStep) Kind() Kind        { return KindSepia }
func (SepiaStep) Validate() error   { return nil }
func (SepiaStep) Apply(g *bmp.Grid) { Sepia(g) }

type InverseStep struct{}

func (InverseStep) Kind() Kind        { return KindInverse }
func (InverseStep) Validate() error   { return nil }
func (InverseStep) Apply(g *bmp.Grid) { Invert(g) }

// Pipeline holds at most one step per Kind and always runs them in
// Kind order, whatever order they were added in.
type Pipeline struct {
	steps [numKinds]Step
}

// NewPipeline returns a pipeline holding the given steps.
// A later step replaces an earlier one of the same kind.
func NewPipeline(steps ...Step) *Pipeline {
	p := &Pipeline{}
	for _, s := range steps {
		p.Add(s)
	}
	return p
}

// Add enables s, replacing any step of the same kind.
func (p *Pipeline) Add(s Step) {
	if s == nil {
		return
	}
	p.steps[s.Kind()] = s
}

// Get returns the step of kind k, if enabled.
func (p *Pipeline) Get(k Kind) (Step, bool) {
	s := p.steps[k]
	return s, s != nil
}

// Steps returns the enabled steps in application order.
func (p *Pipeline) Steps() []Step {
	var out []Step
	for _, s := range p.steps {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (p *Pipeline) Len() int {
	return len(p.Steps())
}

// Validate checks the parameters of every enabled step.
func (p *Pipeline) Validate() error {
	var errs []error
	for _, s := range p.Steps() {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Apply runs every enabled step over the whole grid, one after another.
func (p *Pipeline) Apply(g *bmp.Grid) {
	for _, s := range p.Steps() {
		s.Apply(g)
	}
}
