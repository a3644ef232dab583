package predictor

// Predictor wizard rules: cattle-detail validation, image acceptance and the
// result card shown at step 3.

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/avrlabs/cattleport/internal/backend"
)

// Step is the wizard's ordinal position.
type Step int

const (
	StepDetails Step = 1 // collecting cattle details
	StepPredict Step = 2 // image + category, running prediction
	StepResult  Step = 3 // read-only result display
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "Cattle Details"
	case StepPredict:
		return "Prediction"
	case StepResult:
		return "Result"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// DiseaseTypes lists the condition categories the model ensemble covers.
var DiseaseTypes = []string{"FMD", "LSD"}

// DiseaseTitle expands a category code for display.
func DiseaseTitle(code string) string {
	switch code {
	case "FMD":
		return "Foot & Mouth Disease (FMD)"
	case "LSD":
		return "Lumpy Skin Disease (LSD)"
	default:
		return code
	}
}

// ValidateDetails checks the step-1 fields and returns the parsed age.
// Failures are field-level messages for inline display; nothing is sent to
// the backend when validation fails.
func ValidateDetails(cattleID, age string) (int, error) {
	if strings.TrimSpace(cattleID) == "" {
		return 0, fmt.Errorf("Cattle ID and a valid Age are required.")
	}
	n, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("Cattle ID and a valid Age are required.")
	}
	return n, nil
}

// acceptedImageTypes mirrors the portal's allowed upload formats.
var acceptedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// SniffImage checks that the selected file is an accepted image format,
// returning the detected MIME type. Detection is content-based, so a
// renamed text file is still rejected.
func SniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("Please upload an image for prediction.")
	}
	mime := http.DetectContentType(data)
	if !acceptedImageTypes[mime] {
		return "", fmt.Errorf("Error: File must be JPG or PNG.")
	}
	return mime, nil
}

// ResultCard is the step-3 display model. Tone follows the label: a
// Diseased verdict renders as a warning, Healthy as success.
type ResultCard struct {
	DiseaseType string
	Label       string
	Confidence  float64
}

// Positive reports whether the model flagged the condition.
func (c ResultCard) Positive() bool {
	return c.Label == backend.LabelDiseased
}

// Headline returns the card's first line.
func (c ResultCard) Headline() string {
	verdict := "Negative"
	if c.Positive() {
		verdict = "Positive"
	}
	return fmt.Sprintf("%s Detection: %s", c.DiseaseType, verdict)
}

// Lines returns the full card body, ready for rendering or clipboard export.
func (c ResultCard) Lines() []string {
	lines := []string{
		c.Headline(),
		fmt.Sprintf("Confidence: %.2f%%", c.Confidence),
	}
	if c.Positive() {
		lines = append(lines,
			fmt.Sprintf("The AI model detected high probability of %s.", c.DiseaseType),
			"Immediate action is required. Contact the AVR vet team.",
		)
	} else {
		lines = append(lines,
			fmt.Sprintf("The AI model prediction is negative for %s.", c.DiseaseType),
			"Continue monitoring the cattle.",
		)
	}
	return lines
}
