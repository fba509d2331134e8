package calendar

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"emperror.dev/errors"
)

func TestGeneratePNG(t *testing.T) {
	events := []RawEvent{
		{Start: at(2025, time.February, 1, 14, 30), Title: "Team Sync Meeting XYZ"},
		{Start: nil, Title: "Unscheduled"},
	}

	data, err := GeneratePNG(2025, 2, events, CalendarDate{2025, time.February, 12})
	if err != nil {
		t.Fatalf("GeneratePNG returned error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Errorf("bounds = %v, want %dx%d", b, Width, Height)
	}
}

func TestGenerateInvalidArgument(t *testing.T) {
	if _, err := Generate(2025, 13, nil, Today()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Generate error = %v, want ErrInvalidArgument", err)
	}
}

func TestDefaultRendererIsShared(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	b, _ := Default()
	if a != b {
		t.Error("Default should return the same renderer on subsequent calls")
	}
}
