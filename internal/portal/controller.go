package portal

// The session & navigation controller. All portal behavior is expressed as
// transition methods that mutate the session through its named transitions
// and return an ordered effect list for the UI layer to apply. The
// controller performs no terminal I/O of its own.

import (
	"errors"

	"github.com/avrlabs/cattleport/internal/backend"
	apperrors "github.com/avrlabs/cattleport/internal/errors"
	"github.com/avrlabs/cattleport/internal/logging"
	"github.com/avrlabs/cattleport/internal/predictor"
	"github.com/avrlabs/cattleport/internal/session"
)

// SelectedImage is the predictor's accepted upload.
type SelectedImage struct {
	Name string
	MIME string
	Data []byte
}

// Controller owns the session, the backend strategy and the predictor
// wizard state. One operation is in flight at a time; callers serialize
// access (the TUI blocks further submissions while one is pending).
type Controller struct {
	sess    *session.Session
	backend backend.Backend
	log     *logging.Logger
	mock    bool

	step       predictor.Step
	image      *SelectedImage
	lastResult *predictor.ResultCard
	regForm    AuthForm
	loginForm  AuthForm
	stats      DashboardStats
}

// AuthForm carries the auth card field values as entered.
type AuthForm struct {
	Name     string
	Mobile   string
	Village  string
	Mandal   string
	District string
}

// New creates a controller over the given session and backend. mockMode
// only gates mock-only conveniences (the one-keystroke mock login); all
// real behavior goes through the backend interface.
func New(sess *session.Session, b backend.Backend, logger *logging.Logger, mockMode bool) *Controller {
	return &Controller{
		sess:    sess,
		backend: b,
		log:     logger,
		mock:    mockMode,
		step:    predictor.StepDetails,
		stats:   defaultStats,
	}
}

// Session exposes the session for rendering.
func (c *Controller) Session() *session.Session { return c.sess }

// Step returns the predictor wizard's current step.
func (c *Controller) Step() predictor.Step { return c.step }

// Image returns the currently accepted upload, if any.
func (c *Controller) Image() *SelectedImage { return c.image }

// Result returns the last rendered result card, if any.
func (c *Controller) Result() *predictor.ResultCard { return c.lastResult }

// Stats returns the dashboard counters.
func (c *Controller) Stats() DashboardStats { return c.stats }

// MockMode reports whether mock-only conveniences are enabled.
func (c *Controller) MockMode() bool { return c.mock }

// entryHooks run when an authenticated route lands on a panel. Feature
// placeholder panels render static content in the UI layer and need no hook.
var entryHooks = map[Panel]func(*Controller) []Effect{
	PanelDashboard: (*Controller).enterDashboard,
	PanelProfile:   (*Controller).enterProfile,
	PanelPredictor: (*Controller).enterPredictor,
}

// Route handles a navigation request. Unauthenticated requests for
// protected panels are rejected: a blocking notice, the auth panel forced
// visible, no entry hook, no menu highlight.
func (c *Controller) Route(p Panel) []Effect {
	if p.Protected() && !c.sess.Authenticated() {
		c.logTransition(p, false)
		return []Effect{
			Alert{Text: "Please Login/Register first."},
			ShowPanel{Panel: PanelAuth},
			MarkMenu{None: true},
		}
	}
	c.logTransition(p, true)

	effects := []Effect{
		ShowPanel{Panel: p},
		MarkMenu{Panel: p},
	}
	if hook, ok := entryHooks[p]; ok {
		effects = append(effects, hook(c)...)
	}
	return effects
}

// RouteDefault handles a menu affordance not bound to a panel: dashboard
// when authenticated, auth otherwise.
func (c *Controller) RouteDefault() []Effect {
	if c.sess.Authenticated() {
		return c.Route(PanelDashboard)
	}
	return []Effect{
		ShowPanel{Panel: PanelAuth},
		MarkMenu{None: true},
	}
}

func (c *Controller) enterDashboard() []Effect {
	return []Effect{ShowStats{Stats: c.stats}}
}

func (c *Controller) enterProfile() []Effect {
	return []Effect{ProfileView{
		User:     *c.sess.User,
		Editable: false,
		Avatar:   c.sess.AvatarInitial(),
	}}
}

// enterPredictor resets the wizard: step 1, no image, no stale result.
func (c *Controller) enterPredictor() []Effect {
	c.step = predictor.StepDetails
	c.image = nil
	c.lastResult = nil
	return []Effect{
		SetWizardStep{Step: predictor.StepDetails},
		ClearImageSelection{},
		ClearMessages{Regions: []Region{RegionCattle, RegionPrediction}},
	}
}

func (c *Controller) logTransition(p Panel, allowed bool) {
	if c.log != nil {
		c.log.LogTransition(p.String(), allowed)
	}
}

// errorText flattens backend failures for inline display: structured server
// rejections render their message(s), transport failures render the short
// friendly message, anything else renders verbatim.
func errorText(err error) string {
	if se, ok := backend.AsServerError(err); ok {
		return se.Error()
	}
	var ufe apperrors.UserFriendlyError
	if errors.As(err, &ufe) {
		return ufe.Message
	}
	return err.Error()
}
