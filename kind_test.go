package colorsplit

import (
	"errors"
	"slices"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"g", KindGrayscale, false},
		{"hsv", KindHSV, false},
		{"G", 0, true},
		{"HSV", 0, true},
		{"gray", 0, true},
		{"", 0, true},
		{"rgb", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseKind(%q) error = %v, want ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestKind_Channels(t *testing.T) {
	if got := KindGrayscale.Channels(); !slices.Equal(got, []string{"grayscale"}) {
		t.Errorf("KindGrayscale.Channels() = %v", got)
	}
	if got := KindHSV.Channels(); !slices.Equal(got, []string{"hue", "saturation", "value"}) {
		t.Errorf("KindHSV.Channels() = %v", got)
	}
	if got := Kind(5).Channels(); got != nil {
		t.Errorf("Kind(5).Channels() = %v, want nil", got)
	}

	// Callers must not be able to mutate the model's channel list.
	names := KindHSV.Channels()
	names[0] = "x"
	if KindHSV.Channels()[0] != "hue" {
		t.Error("Channels() exposes internal slice")
	}
}

func TestKind_String(t *testing.T) {
	if got := Kind(5).String(); got != "Kind(5)" {
		t.Errorf("Kind(5).String() = %q", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeParallel, ModeSequential} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}

	_, err := ParseMode("fast")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseMode(fast) error = %v, want ErrInvalidArgument", err)
	}
	if got := Mode(9).String(); got != "Mode(9)" {
		t.Errorf("Mode(9).String() = %q", got)
	}
}
