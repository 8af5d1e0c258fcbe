package filters

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-shakeel/bmpedit/internal/bmp"
)

func kinds(p *Pipeline) []Kind {
	var out []Kind
	for _, s := range p.Steps() {
		out = append(out, s.Kind())
	}
	return out
}

func TestPipelineCanonicalOrder(t *testing.T) {
	p := NewPipeline(
		InverseStep{},
		SepiaStep{},
		GreyscaleStep{},
		ThresholdStep{Threshold: 0.5},
		GammaStep{Gamma: 2},
		WhiteBalanceStep{},
		ContrastStep{Contrast: 10},
		HSLStep{Hue: 30},
	)
	assert.Equal(t, []Kind{
		KindHSL, KindContrast, KindWhiteBalance, KindGamma,
		KindThreshold, KindGreyscale, KindSepia, KindInverse,
	}, kinds(p))
	assert.Equal(t, 8, p.Len())
}

func TestPipelineOneStepPerKind(t *testing.T) {
	p := NewPipeline(HSLStep{Hue: 10}, HSLStep{Saturation: 20}, ContrastStep{Contrast: 5})
	require.Equal(t, 2, p.Len())

	s, ok := p.Get(KindHSL)
	require.True(t, ok)
	assert.Equal(t, HSLStep{Saturation: 20}, s)

	_, ok = p.Get(KindGamma)
	assert.False(t, ok)
	assert.Equal(t, []Kind{KindHSL, KindContrast}, kinds(p))

	p.Add(nil)
	assert.Equal(t, 2, p.Len())
}

func TestPipelineOrderIsLoadBearing(t *testing.T) {
	// Gamma runs before threshold: 100 brightens to ~202 and turns white.
	// The other way round it would turn black first and stay black.
	g := uniform(bmp.Pixel{B: 100, G: 100, R: 100}, 1)
	NewPipeline(ThresholdStep{Threshold: 0.5}, GammaStep{Gamma: 4}).Apply(g)
	assert.Equal(t, bmp.Pixel{B: 255, G: 255, R: 255}, g.Pix[0])
}

func TestEmptyPipelineLeavesGrid(t *testing.T) {
	g := gradient(5, 5)
	orig := cloneGrid(g)
	p := NewPipeline()
	assert.Zero(t, p.Len())
	p.Apply(g)
	assert.Equal(t, orig.Pix, g.Pix)
}

func TestPipelineApplyMatchesFunctions(t *testing.T) {
	got := gradient(12, 7)
	want := cloneGrid(got)

	NewPipeline(SepiaStep{}, ContrastStep{Contrast: 40}, WhiteBalanceStep{}).Apply(got)

	Contrast(want, 40)
	WhiteBalance(want)
	Sepia(want)
	assert.Equal(t, want.Pix, got.Pix)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name  string
		step  Step
		valid bool
	}{
		{"hsl ok", HSLStep{Hue: -360, Saturation: 100, Lightness: -100}, true},
		{"hue too big", HSLStep{Hue: 361}, false},
		{"saturation too small", HSLStep{Saturation: -101}, false},
		{"lightness too big", HSLStep{Lightness: 100.5}, false},
		{"contrast ok", ContrastStep{Contrast: -100}, true},
		{"contrast too big", ContrastStep{Contrast: 101}, false},
		{"gamma lower bound", GammaStep{Gamma: 0.01}, true},
		{"gamma zero", GammaStep{Gamma: 0}, false},
		{"gamma too big", GammaStep{Gamma: 8}, false},
		{"threshold ok", ThresholdStep{Threshold: 1}, true},
		{"threshold negative", ThresholdStep{Threshold: -0.1}, false},
		{"white balance", WhiteBalanceStep{}, true},
		{"greyscale", GreyscaleStep{}, true},
		{"sepia", SepiaStep{}, true},
		{"inverse", InverseStep{}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := NewPipeline(tc.step).Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			var re *RangeError
			assert.True(t, errors.As(err, &re), "got %v", err)
		})
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := ContrastStep{Contrast: 150}.Validate()
	assert.EqualError(t, err, "the contrast must be between -100 and 100, inclusive (got 150)")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "white-balance", KindWhiteBalance.String())
	assert.Equal(t, "inverse", KindInverse.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
