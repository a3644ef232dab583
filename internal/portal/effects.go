package portal

// Effects are the controller's output: a description of what the UI layer
// should do, decoupled from any rendering. The TUI consumes them in order.

import (
	"github.com/avrlabs/cattleport/internal/predictor"
	"github.com/avrlabs/cattleport/internal/session"
)

// Tone selects how a message renders.
type Tone int

const (
	ToneDefault Tone = iota
	ToneSuccess
	ToneError
)

// Region names an inline message area next to a form.
type Region int

const (
	RegionRegister Region = iota
	RegionLogin
	RegionOTP
	RegionCattle
	RegionPrediction
	RegionProfile
)

// Effect is one UI instruction emitted by a transition.
type Effect interface{ effect() }

// ShowPanel makes the given panel the single visible primary panel.
type ShowPanel struct{ Panel Panel }

// MarkMenu highlights exactly one menu entry, or clears all when None.
type MarkMenu struct {
	Panel Panel
	None  bool
}

// ShowMessage renders an inline message in a form region.
type ShowMessage struct {
	Region Region
	Text   string
	Tone   Tone
}

// ClearMessages empties the given regions; an empty slice clears all.
type ClearMessages struct{ Regions []Region }

// Alert is a blocking notice (the "Please Login/Register first." case).
type Alert struct{ Text string }

// ShowOTPEntry reveals the OTP sub-panel under the active auth card.
type ShowOTPEntry struct{}

// HideOTPEntry hides the OTP sub-panel.
type HideOTPEntry struct{}

// SetAuthTab activates the register or login card.
type SetAuthTab struct{ Tab session.Tab }

// SetWizardStep moves the predictor step indicator.
type SetWizardStep struct{ Step predictor.Step }

// ShowStats refreshes the dashboard counters.
type ShowStats struct{ Stats DashboardStats }

// ShowResult renders the step-3 result card.
type ShowResult struct{ Card predictor.ResultCard }

// ShowPreview updates the image thumbnail area after a successful read.
type ShowPreview struct {
	Name string
	MIME string
	Size int
}

// ClearImageSelection empties the file input after a type rejection.
type ClearImageSelection struct{}

// ProfileView (re)renders the profile form from the session.
type ProfileView struct {
	User     session.User
	Editable bool
	Avatar   string
}

func (ShowPanel) effect()           {}
func (MarkMenu) effect()            {}
func (ShowMessage) effect()         {}
func (ClearMessages) effect()       {}
func (Alert) effect()               {}
func (ShowOTPEntry) effect()        {}
func (HideOTPEntry) effect()        {}
func (SetAuthTab) effect()          {}
func (SetWizardStep) effect()       {}
func (ShowStats) effect()           {}
func (ShowResult) effect()          {}
func (ShowPreview) effect()         {}
func (ClearImageSelection) effect() {}
func (ProfileView) effect()         {}
