package colour

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

// fillImage creates a solid-colour RGBA image of the given size.
func fillImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSamplerWorkingResolution(t *testing.T) {
	cfg := SamplerConfig{ResizeWidth: 10, ResizeHeight: 8, SampleCap: 0, MinDimension: 0}
	s := NewSampler(cfg, nil)

	samples, err := s.Sample(fillImage(37, 23, color.RGBA{R: 255, A: 255}), 1)
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	if want := 10 * 8; len(samples) != want {
		t.Errorf("got %d samples, want %d", len(samples), want)
	}
	for _, hsv := range samples {
		if hsv.H != 0 || hsv.S != 255 || hsv.V != 255 {
			t.Fatalf("solid red image produced sample %+v", hsv)
		}
	}
}

func TestSamplerCap(t *testing.T) {
	cfg := SamplerConfig{ResizeWidth: 20, ResizeHeight: 20, SampleCap: 50, MinDimension: 0}
	s := NewSampler(cfg, nil)

	samples, err := s.Sample(fillImage(20, 20, color.RGBA{G: 255, A: 255}), 7)
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	if len(samples) != 50 {
		t.Errorf("got %d samples, want cap of 50", len(samples))
	}
}

func TestSamplerDeterministic(t *testing.T) {
	cfg := SamplerConfig{ResizeWidth: 16, ResizeHeight: 16, SampleCap: 40, MinDimension: 0}
	s := NewSampler(cfg, nil)

	// Gradient image so the subsample order actually matters.
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 40, A: 255})
		}
	}

	first, err := s.Sample(img, 42)
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	second, err := s.Sample(img, 42)
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same image and seed produced different sample sets")
	}

	other, err := s.Sample(img, 43)
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	if reflect.DeepEqual(first, other) {
		t.Error("different seeds produced identical sample sets for a gradient image")
	}
}

func TestSamplerUndersizedImageStillSamples(t *testing.T) {
	cfg := SamplerConfig{ResizeWidth: 4, ResizeHeight: 4, SampleCap: 0, MinDimension: 64}
	s := NewSampler(cfg, nil)

	samples, err := s.Sample(fillImage(8, 8, color.RGBA{B: 255, A: 255}), 1)
	if err != nil {
		t.Fatalf("undersized image should sample best-effort, got error: %v", err)
	}
	if len(samples) != 16 {
		t.Errorf("got %d samples, want 16", len(samples))
	}
}

func TestSamplerNilImage(t *testing.T) {
	s := NewSampler(DefaultSamplerConfig(), nil)
	if _, err := s.Sample(nil, 1); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestSamplerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     SamplerConfig
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultSamplerConfig(), wantErr: false},
		{name: "zero width", cfg: SamplerConfig{ResizeWidth: 0, ResizeHeight: 400}, wantErr: true},
		{name: "negative cap", cfg: SamplerConfig{ResizeWidth: 600, ResizeHeight: 400, SampleCap: -1}, wantErr: true},
		{name: "negative min dimension", cfg: SamplerConfig{ResizeWidth: 600, ResizeHeight: 400, MinDimension: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
