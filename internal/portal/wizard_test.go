package portal

import (
	"context"
	"strings"
	"testing"

	"github.com/avrlabs/cattleport/internal/backend"
	"github.com/avrlabs/cattleport/internal/predictor"
	"github.com/avrlabs/cattleport/internal/session"
)

func TestScenarioCFullWizardRun(t *testing.T) {
	c, _ := newMockController()
	ctx := context.Background()
	authenticate(t, c)
	c.Route(PanelPredictor)

	if c.Step() != predictor.StepDetails {
		t.Fatalf("wizard should start at step 1, got %d", c.Step())
	}

	effects := c.SubmitCattle(ctx, "C1", "female", "5")
	if c.Step() != predictor.StepPredict {
		t.Fatalf("save success should advance to step 2, got %d", c.Step())
	}
	if msg, ok := messageAt(effects, RegionCattle); !ok || msg.Tone != ToneSuccess {
		t.Fatalf("expected save success message, got %#v", effects)
	}
	if c.Session().Cattle == nil || c.Session().Cattle.ID != "C1" || c.Session().Cattle.Age != 5 {
		t.Fatalf("cattle record not stored: %+v", c.Session().Cattle)
	}

	if effects := c.SelectImage("cow.jpg", jpegBytes); len(effects) == 0 {
		t.Fatal("selecting a valid JPEG should produce a preview effect")
	}
	if c.Image() == nil || c.Image().MIME != "image/jpeg" {
		t.Fatalf("image not recorded: %+v", c.Image())
	}

	effects = c.RunPrediction(ctx, "FMD")
	if c.Step() != predictor.StepResult {
		t.Fatalf("prediction success should advance to step 3, got %d", c.Step())
	}
	result, ok := shownResult(effects)
	if !ok {
		t.Fatal("expected a result card")
	}
	if result.Card.Positive() != (result.Card.Label == backend.LabelDiseased) {
		t.Fatal("card tone should follow the returned label")
	}
	if result.Card.Confidence < 50 || result.Card.Confidence > 100 {
		t.Fatalf("confidence out of range: %f", result.Card.Confidence)
	}

	// Step 3 is read-only; re-entering the panel resets everything.
	effects = c.Route(PanelPredictor)
	if c.Step() != predictor.StepDetails {
		t.Fatalf("panel re-entry should reset to step 1, got %d", c.Step())
	}
	if c.Result() != nil {
		t.Fatal("panel re-entry should discard the displayed result")
	}
	if c.Image() != nil {
		t.Fatal("panel re-entry should discard the image selection")
	}
	if step, ok := wizardStep(effects); !ok || step.Step != predictor.StepDetails {
		t.Fatalf("expected step reset effect, got %#v", effects)
	}
}

func TestInvalidDetailsNeverReachBackend(t *testing.T) {
	m := backend.NewMock(backend.MockOptions{OTP: "123456"})
	counting := &countingBackend{Backend: m}
	c := New(session.New(), counting, nil, true)
	authenticate(t, c)
	c.Route(PanelPredictor)
	ctx := context.Background()

	cases := []struct{ id, age string }{
		{"", "5"},
		{"C1", "0"},
		{"C1", "-2"},
		{"C1", "abc"},
		{"C1", ""},
	}
	for _, tc := range cases {
		effects := c.SubmitCattle(ctx, tc.id, "female", tc.age)
		if msg, ok := messageAt(effects, RegionCattle); !ok || msg.Tone != ToneError {
			t.Fatalf("id=%q age=%q: expected field error", tc.id, tc.age)
		}
		if c.Step() != predictor.StepDetails {
			t.Fatalf("id=%q age=%q: step should stay 1, got %d", tc.id, tc.age, c.Step())
		}
	}
	if counting.saveCalls != 0 {
		t.Fatalf("invalid details must never issue a save call, got %d", counting.saveCalls)
	}
}

func TestNonImageSelectionRejectedAndCleared(t *testing.T) {
	c, _ := newMockController()
	authenticate(t, c)
	c.Route(PanelPredictor)
	c.SubmitCattle(context.Background(), "C1", "female", "5")

	effects := c.SelectImage("notes.txt", []byte("definitely not an image, just text"))
	cleared := false
	for _, e := range effects {
		if _, ok := e.(ClearImageSelection); ok {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("type rejection should clear the file selection")
	}
	if msg, ok := messageAt(effects, RegionPrediction); !ok || !strings.Contains(msg.Text, "JPG or PNG") {
		t.Fatalf("expected type error message, got %#v", effects)
	}
	if c.Image() != nil {
		t.Fatal("rejected file must not be recorded")
	}
	if c.Step() != predictor.StepPredict {
		t.Fatalf("rejection must not move the step, got %d", c.Step())
	}
}

func TestPredictionWithoutImageBlocked(t *testing.T) {
	m := backend.NewMock(backend.MockOptions{OTP: "123456"})
	counting := &countingBackend{Backend: m}
	c := New(session.New(), counting, nil, true)
	authenticate(t, c)
	c.Route(PanelPredictor)
	ctx := context.Background()

	c.SubmitCattle(ctx, "C1", "female", "5")
	effects := c.RunPrediction(ctx, "FMD")
	if msg, ok := messageAt(effects, RegionPrediction); !ok || !strings.Contains(msg.Text, "upload an image") {
		t.Fatalf("expected missing-image error, got %#v", effects)
	}
	if counting.predictCalls != 0 {
		t.Fatal("missing image must not issue a prediction call")
	}
	if c.Step() != predictor.StepPredict {
		t.Fatalf("step should hold at 2, got %d", c.Step())
	}
}

func TestPredictionBeforeDetailsBlocked(t *testing.T) {
	c, _ := newMockController()
	authenticate(t, c)
	c.Route(PanelPredictor)

	effects := c.RunPrediction(context.Background(), "FMD")
	if msg, ok := messageAt(effects, RegionCattle); !ok || msg.Tone != ToneError {
		t.Fatalf("expected details-first error, got %#v", effects)
	}
	if c.Step() != predictor.StepDetails {
		t.Fatalf("step should stay 1, got %d", c.Step())
	}
}

func TestPredictionFailureHoldsStepTwo(t *testing.T) {
	c, _ := newMockController()
	authenticate(t, c)
	c.Route(PanelPredictor)
	ctx := context.Background()
	c.SubmitCattle(ctx, "C1", "female", "5")
	c.SelectImage("cow.jpg", jpegBytes)

	// Swap in a failing backend for the prediction call.
	c.backend = failingBackend{msg: "Model unavailable."}
	effects := c.RunPrediction(ctx, "FMD")
	if msg, ok := messageAt(effects, RegionPrediction); !ok || msg.Text != "Model unavailable." {
		t.Fatalf("expected server error surfaced, got %#v", effects)
	}
	if c.Step() != predictor.StepPredict {
		t.Fatalf("failure should hold at step 2, got %d", c.Step())
	}
	if c.Result() != nil {
		t.Fatal("no result card on failure")
	}
}

func TestSaveFailureHoldsStepOne(t *testing.T) {
	c := New(session.New(), failingBackend{msg: "Duplicate cattle ID."}, nil, false)
	c.sess.CompleteOTP(session.User{Name: "Test", Mobile: "9876543210"})
	c.Route(PanelPredictor)

	effects := c.SubmitCattle(context.Background(), "C1", "female", "5")
	if msg, ok := messageAt(effects, RegionCattle); !ok || msg.Text != "Duplicate cattle ID." {
		t.Fatalf("expected save error surfaced, got %#v", effects)
	}
	if c.Step() != predictor.StepDetails {
		t.Fatalf("save failure should hold at step 1, got %d", c.Step())
	}
	if c.Session().Cattle != nil {
		t.Fatal("failed save must not record cattle details")
	}
}

func TestStepNeverExceedsThree(t *testing.T) {
	c, _ := newMockController()
	authenticate(t, c)
	c.Route(PanelPredictor)
	ctx := context.Background()

	c.SubmitCattle(ctx, "C1", "female", "5")
	c.SelectImage("cow.jpg", jpegBytes)
	c.RunPrediction(ctx, "FMD")
	// A second prediction from step 3 reruns but cannot pass step 3.
	c.RunPrediction(ctx, "LSD")
	if c.Step() > predictor.StepResult {
		t.Fatalf("step exceeded 3: %d", c.Step())
	}
}
