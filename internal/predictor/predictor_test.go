package predictor

import (
	"strings"
	"testing"
)

// Minimal valid file headers for content sniffing.
var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46}
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
)

func TestValidateDetails(t *testing.T) {
	cases := []struct {
		name    string
		id, age string
		wantAge int
		wantErr bool
	}{
		{"valid", "C1", "5", 5, false},
		{"padded", " C1 ", " 12 ", 12, false},
		{"empty id", "", "5", 0, true},
		{"blank id", "   ", "5", 0, true},
		{"zero age", "C1", "0", 0, true},
		{"negative age", "C1", "-3", 0, true},
		{"non-numeric age", "C1", "five", 0, true},
		{"empty age", "C1", "", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			age, err := ValidateDetails(tc.id, tc.age)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if age != tc.wantAge {
				t.Fatalf("age = %d, want %d", age, tc.wantAge)
			}
		})
	}
}

func TestSniffImageAcceptsJPEGAndPNG(t *testing.T) {
	if mime, err := SniffImage(jpegHeader); err != nil || mime != "image/jpeg" {
		t.Fatalf("JPEG: mime=%q err=%v", mime, err)
	}
	if mime, err := SniffImage(pngHeader); err != nil || mime != "image/png" {
		t.Fatalf("PNG: mime=%q err=%v", mime, err)
	}
}

func TestSniffImageRejectsNonImages(t *testing.T) {
	if _, err := SniffImage([]byte("%PDF-1.4 not an image")); err == nil {
		t.Fatal("PDF content should be rejected")
	}
	if _, err := SniffImage([]byte("plain text pretending to be cow.jpg")); err == nil {
		t.Fatal("text content should be rejected")
	}
	if _, err := SniffImage(nil); err == nil {
		t.Fatal("missing file should be rejected")
	}
}

func TestResultCardTone(t *testing.T) {
	positive := ResultCard{DiseaseType: "FMD", Label: "Diseased", Confidence: 88.25}
	if !positive.Positive() {
		t.Fatal("Diseased label should read as positive detection")
	}
	if positive.Headline() != "FMD Detection: Positive" {
		t.Fatalf("headline = %q", positive.Headline())
	}
	body := strings.Join(positive.Lines(), "\n")
	if !strings.Contains(body, "88.25%") || !strings.Contains(body, "AVR vet team") {
		t.Fatalf("positive card body wrong:\n%s", body)
	}

	negative := ResultCard{DiseaseType: "LSD", Label: "Healthy", Confidence: 60.5}
	if negative.Positive() {
		t.Fatal("Healthy label should read as negative detection")
	}
	body = strings.Join(negative.Lines(), "\n")
	if !strings.Contains(body, "Continue monitoring") {
		t.Fatalf("negative card body wrong:\n%s", body)
	}
}

func TestStepString(t *testing.T) {
	if StepDetails.String() != "Cattle Details" || StepResult.String() != "Result" {
		t.Fatal("step names wrong")
	}
}

func TestDiseaseTitle(t *testing.T) {
	if !strings.Contains(DiseaseTitle("FMD"), "Foot") {
		t.Fatal("FMD title wrong")
	}
	if DiseaseTitle("other") != "other" {
		t.Fatal("unknown codes pass through")
	}
}
