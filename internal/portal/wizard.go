package portal

// Predictor wizard transitions. The step only moves forward; re-entering
// the panel (enterPredictor) is the sole reset path besides logout.

import (
	"context"

	"github.com/avrlabs/cattleport/internal/backend"
	"github.com/avrlabs/cattleport/internal/predictor"
	"github.com/avrlabs/cattleport/internal/session"
)

// SubmitCattle validates and saves the step-1 cattle details. Validation
// failures produce a field-level message without touching the backend; save
// failures hold the wizard at step 1.
func (c *Controller) SubmitCattle(ctx context.Context, cattleID, gender, age string) []Effect {
	effects := []Effect{ClearMessages{Regions: []Region{RegionCattle, RegionPrediction}}}

	parsedAge, err := predictor.ValidateDetails(cattleID, age)
	if err != nil {
		return append(effects, ShowMessage{Region: RegionCattle, Text: err.Error(), Tone: ToneError})
	}

	msg, err := c.backend.SaveCattle(ctx, backend.CattleSubmission{
		ID:     cattleID,
		Gender: gender,
		Age:    parsedAge,
	})
	if err != nil {
		return append(effects, ShowMessage{Region: RegionCattle, Text: errorText(err), Tone: ToneError})
	}

	c.sess.RecordCattle(session.CattleRecord{ID: cattleID, Gender: gender, Age: parsedAge})
	c.step = predictor.StepPredict

	return append(effects,
		ShowMessage{Region: RegionCattle, Text: msg, Tone: ToneSuccess},
		SetWizardStep{Step: predictor.StepPredict},
	)
}

// SelectImage records a candidate upload. A type rejection clears the file
// selection and blocks submission, but this path never gates the preview:
// the UI previews whatever read completes last.
func (c *Controller) SelectImage(name string, data []byte) []Effect {
	mime, err := predictor.SniffImage(data)
	if err != nil {
		c.image = nil
		return []Effect{
			ClearImageSelection{},
			ShowMessage{Region: RegionPrediction, Text: err.Error(), Tone: ToneError},
		}
	}

	c.image = &SelectedImage{Name: name, MIME: mime, Data: data}
	return []Effect{
		ShowPreview{Name: name, MIME: mime, Size: len(data)},
		ClearMessages{Regions: []Region{RegionPrediction}},
	}
}

// RunPrediction submits the accepted image and category. Failure keeps the
// wizard at step 2; success renders the result card and advances to step 3.
func (c *Controller) RunPrediction(ctx context.Context, diseaseType string) []Effect {
	effects := []Effect{ClearMessages{Regions: []Region{RegionPrediction}}}

	if c.step < predictor.StepPredict {
		return append(effects, ShowMessage{
			Region: RegionCattle,
			Text:   "Save the cattle details first.",
			Tone:   ToneError,
		})
	}
	if c.image == nil {
		return append(effects, ShowMessage{
			Region: RegionPrediction,
			Text:   "Please upload an image for prediction.",
			Tone:   ToneError,
		})
	}
	if diseaseType == "" {
		return append(effects, ShowMessage{
			Region: RegionPrediction,
			Text:   "Select a disease type.",
			Tone:   ToneError,
		})
	}

	result, err := c.backend.Predict(ctx, backend.PredictionRequest{
		DiseaseType: diseaseType,
		FileName:    c.image.Name,
		Image:       c.image.Data,
	})
	if err != nil {
		return append(effects, ShowMessage{Region: RegionPrediction, Text: errorText(err), Tone: ToneError})
	}

	card := predictor.ResultCard{
		DiseaseType: diseaseType,
		Label:       result.Label,
		Confidence:  result.Confidence,
	}
	c.lastResult = &card
	c.step = predictor.StepResult

	return append(effects,
		ShowMessage{Region: RegionPrediction, Text: "Prediction complete!", Tone: ToneSuccess},
		ShowResult{Card: card},
		SetWizardStep{Step: predictor.StepResult},
	)
}
