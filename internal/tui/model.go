package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/avrlabs/cattleport/internal/logging"
	"github.com/avrlabs/cattleport/internal/portal"
	"github.com/avrlabs/cattleport/internal/predictor"
	"github.com/avrlabs/cattleport/internal/session"
)

// opTimeout bounds any single backend operation.
const opTimeout = 30 * time.Second

// notice is one rendered inline message.
type notice struct {
	text string
	tone portal.Tone
}

// imagePreview is the metadata line shown after an accepted upload.
type imagePreview struct {
	name string
	mime string
	size int
}

// effectsMsg carries a finished operation's effect list back to Update.
type effectsMsg struct {
	effects []portal.Effect
}

// imageReadMsg is the result of reading a selected image file. seq guards
// against a stale read landing after a newer selection.
type imageReadMsg struct {
	seq  int
	name string
	data []byte
	err  error
}

// Model is the portal TUI model. It renders the controller's state and
// feeds user intent back in as transitions; all portal behavior lives in
// the controller.
type Model struct {
	ctrl   *portal.Controller
	log    *logging.Logger
	styles Styles
	layout Layout

	panel      portal.Panel
	menuCursor int
	menuActive int // index into portal.MenuPanels(), -1 when none
	focusMenu  bool

	busy  bool
	spin  spinner.Model
	alert string

	messages map[portal.Region]notice

	// Auth panel
	authVals   authValues
	authForm   *huh.Form
	otpVals    otpValues
	otpForm    *huh.Form
	otpVisible bool

	// Predictor wizard
	step        predictor.Step
	cattleVals  cattleValues
	cattleForm  *huh.Form
	predictVals predictValues
	predictForm *huh.Form
	preview     *imagePreview
	previewSeq  int
	result      *predictor.ResultCard
	copied      bool

	// Profile panel
	profVals profileValues
	profForm *huh.Form
	profView *portal.ProfileView

	stats portal.DashboardStats

	initCmds []tea.Cmd
	quitting bool
}

// NewModel creates the TUI model and routes to the initial panel.
func NewModel(ctrl *portal.Controller, logger *logging.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(DefaultTheme.Accent)

	m := &Model{
		ctrl:       ctrl,
		log:        logger,
		styles:     DefaultStyles,
		layout:     NewLayout(DefaultWidth, DefaultHeight),
		menuActive: -1,
		spin:       sp,
		messages:   map[portal.Region]notice{},
		stats:      ctrl.Stats(),
		step:       ctrl.Step(),
	}

	m.initCmds = m.applyEffects(ctrl.RouteDefault())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{m.spin.Tick}, m.initCmds...)
	m.initCmds = nil
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case effectsMsg:
		m.busy = false
		cmds := m.applyEffects(msg.effects)
		return m, tea.Batch(cmds...)

	case imageReadMsg:
		return m.handleImageRead(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Non-key messages (blink ticks etc.) still reach the active form.
	if form := m.activeForm(); form != nil {
		cmd := m.updateForm(form, msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	// One operation in flight at a time; drop input until it lands.
	if m.busy {
		return m, nil
	}

	authed := m.ctrl.Session().Authenticated()

	switch msg.String() {
	case "esc":
		if m.alert != "" {
			m.alert = ""
			return m, nil
		}
		if authed {
			m.focusMenu = !m.focusMenu
		}
		return m, nil

	case "ctrl+x":
		if authed {
			cmds := m.applyEffects(m.ctrl.Logout())
			m.focusMenu = false
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case "ctrl+t":
		if m.panel == portal.PanelAuth {
			tab := session.TabLogin
			if m.ctrl.Session().ActiveTab == session.TabLogin {
				tab = session.TabRegister
			}
			cmds := m.applyEffects(m.ctrl.SwitchTab(tab))
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case "ctrl+b":
		if m.panel == portal.PanelAuth && m.ctrl.MockMode() {
			cmds := m.applyEffects(m.ctrl.MockLogin())
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case "ctrl+r":
		if m.panel == portal.PanelAuth && m.otpVisible {
			return m, m.runOp(m.ctrl.ResendOTP)
		}
		return m, nil
	}

	if authed && (m.focusMenu || m.activeForm() == nil) {
		if handled, cmd := m.handleMenuKey(msg); handled {
			return m, cmd
		}
	}

	// Panel-local keys outside forms.
	switch {
	case m.panel == portal.PanelProfile && m.profForm == nil && msg.String() == "e":
		cmds := m.applyEffects(m.ctrl.BeginProfileEdit())
		return m, tea.Batch(cmds...)

	case m.panel == portal.PanelPredictor && m.step == predictor.StepResult:
		switch msg.String() {
		case "y":
			if m.result != nil && copyResult(*m.result) == nil {
				m.copied = true
			}
			return m, nil
		case "n":
			cmds := m.applyEffects(m.ctrl.Route(portal.PanelPredictor))
			return m, tea.Batch(cmds...)
		}
	}

	if form := m.activeForm(); form != nil {
		cmd := m.updateForm(form, msg)
		if form.State == huh.StateCompleted {
			return m, m.handleFormSubmit(form)
		}
		return m, cmd
	}
	return m, nil
}

// handleMenuKey drives the sidebar. Returns false for keys the menu does
// not consume so they can fall through to the panel.
func (m *Model) handleMenuKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	items := portal.MenuPanels()
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return true, nil
	case "down", "j":
		if m.menuCursor < len(items)-1 {
			m.menuCursor++
		}
		return true, nil
	case "enter":
		cmds := m.applyEffects(m.ctrl.Route(items[m.menuCursor]))
		m.focusMenu = false
		return true, tea.Batch(cmds...)
	}
	return false, nil
}

// activeForm returns the form that should receive input, if any.
func (m *Model) activeForm() *huh.Form {
	if m.focusMenu {
		return nil
	}
	switch m.panel {
	case portal.PanelAuth:
		if m.otpVisible {
			return m.otpForm
		}
		return m.authForm
	case portal.PanelPredictor:
		switch m.step {
		case predictor.StepDetails:
			return m.cattleForm
		case predictor.StepPredict:
			return m.predictForm
		}
	case portal.PanelProfile:
		return m.profForm
	}
	return nil
}

// updateForm delegates a message to a form, keeping the model's pointer
// fresh since huh returns a new form value.
func (m *Model) updateForm(form *huh.Form, msg tea.Msg) tea.Cmd {
	updated, cmd := form.Update(msg)
	next, ok := updated.(*huh.Form)
	if !ok {
		return cmd
	}
	switch form {
	case m.authForm:
		m.authForm = next
	case m.otpForm:
		m.otpForm = next
	case m.cattleForm:
		m.cattleForm = next
	case m.predictForm:
		m.predictForm = next
	case m.profForm:
		m.profForm = next
	}
	return cmd
}

// handleFormSubmit dispatches a completed form to the matching transition
// and rebuilds the form so the panel stays editable afterwards.
func (m *Model) handleFormSubmit(form *huh.Form) tea.Cmd {
	switch form {
	case m.otpForm:
		code := m.otpVals.code
		m.otpForm = buildOTPForm(&m.otpVals)
		return tea.Batch(m.otpForm.Init(), m.runOp(func(ctx context.Context) []portal.Effect {
			return m.ctrl.VerifyOTP(ctx, code)
		}))

	case m.authForm:
		registering := m.ctrl.Session().ActiveTab == session.TabRegister
		authForm := portal.AuthForm{
			Name:     m.authVals.name,
			Mobile:   m.authVals.mobile,
			Village:  m.authVals.village,
			Mandal:   m.authVals.mandal,
			District: m.authVals.district,
		}
		m.authForm = m.buildAuthForm()
		return tea.Batch(m.authForm.Init(), m.runOp(func(ctx context.Context) []portal.Effect {
			return m.ctrl.RequestOTP(ctx, registering, authForm)
		}))

	case m.cattleForm:
		id, gender, age := m.cattleVals.id, m.cattleVals.gender, m.cattleVals.age
		m.cattleForm = buildCattleForm(&m.cattleVals)
		return tea.Batch(m.cattleForm.Init(), m.runOp(func(ctx context.Context) []portal.Effect {
			return m.ctrl.SubmitCattle(ctx, id, gender, age)
		}))

	case m.predictForm:
		path := m.predictVals.imagePath
		m.predictForm = buildPredictForm(&m.predictVals)
		m.previewSeq++
		m.busy = true
		return tea.Batch(m.predictForm.Init(), readImageCmd(m.previewSeq, path), m.spin.Tick)

	case m.profForm:
		v := m.profVals
		return m.runOp(func(ctx context.Context) []portal.Effect {
			return m.ctrl.SaveProfile(ctx, v.name, v.village, v.mandal, v.district)
		})
	}
	return nil
}

// runOp executes a controller transition off the update loop. The busy
// flag serializes operations: input is dropped until the effects land.
func (m *Model) runOp(fn func(ctx context.Context) []portal.Effect) tea.Cmd {
	m.busy = true
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return effectsMsg{effects: fn(ctx)}
	})
}

// readImageCmd loads the selected file off the update loop.
func readImageCmd(seq int, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return imageReadMsg{seq: seq, name: filepath.Base(path), data: data, err: err}
	}
}

func (m *Model) handleImageRead(msg imageReadMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.previewSeq {
		// A newer selection superseded this read.
		return m, nil
	}
	m.busy = false

	if msg.err != nil {
		m.preview = nil
		m.messages[portal.RegionPrediction] = notice{
			text: fmt.Sprintf("Could not read %s.", msg.name),
			tone: portal.ToneError,
		}
		return m, nil
	}

	cmds := m.applyEffects(m.ctrl.SelectImage(msg.name, msg.data))
	if m.ctrl.Image() == nil {
		// Rejected: the type error is already on screen.
		return m, tea.Batch(cmds...)
	}

	diseaseType := m.predictVals.diseaseType
	cmds = append(cmds, m.runOp(func(ctx context.Context) []portal.Effect {
		return m.ctrl.RunPrediction(ctx, diseaseType)
	}))
	return m, tea.Batch(cmds...)
}

// applyEffects updates view state from a transition's effect list, in
// order. Returns init commands for any forms built along the way.
func (m *Model) applyEffects(effects []portal.Effect) []tea.Cmd {
	var cmds []tea.Cmd

	for _, e := range effects {
		switch e := e.(type) {
		case portal.ShowPanel:
			m.panel = e.Panel
			if e.Panel == portal.PanelAuth && m.authForm == nil {
				m.authForm = m.buildAuthForm()
				cmds = append(cmds, m.authForm.Init())
			}

		case portal.MarkMenu:
			if e.None {
				m.menuActive = -1
			} else {
				m.menuActive = menuIndex(e.Panel)
				if m.menuActive >= 0 {
					m.menuCursor = m.menuActive
				}
			}

		case portal.ShowMessage:
			m.messages[e.Region] = notice{text: e.Text, tone: e.Tone}

		case portal.ClearMessages:
			if len(e.Regions) == 0 {
				m.messages = map[portal.Region]notice{}
			} else {
				for _, r := range e.Regions {
					delete(m.messages, r)
				}
			}

		case portal.Alert:
			m.alert = e.Text

		case portal.ShowOTPEntry:
			m.otpVisible = true
			m.otpVals.code = ""
			m.otpForm = buildOTPForm(&m.otpVals)
			cmds = append(cmds, m.otpForm.Init())

		case portal.HideOTPEntry:
			m.otpVisible = false
			m.otpForm = nil

		case portal.SetAuthTab:
			m.authForm = m.buildAuthForm()
			cmds = append(cmds, m.authForm.Init())

		case portal.SetWizardStep:
			m.step = e.Step
			switch e.Step {
			case predictor.StepDetails:
				m.cattleVals = cattleValues{}
				m.result = nil
				m.copied = false
				m.cattleForm = buildCattleForm(&m.cattleVals)
				cmds = append(cmds, m.cattleForm.Init())
			case predictor.StepPredict:
				if m.predictVals.diseaseType == "" {
					m.predictVals.diseaseType = predictor.DiseaseTypes[0]
				}
				m.predictForm = buildPredictForm(&m.predictVals)
				cmds = append(cmds, m.predictForm.Init())
			}

		case portal.ShowStats:
			m.stats = e.Stats

		case portal.ShowResult:
			card := e.Card
			m.result = &card
			m.copied = false

		case portal.ShowPreview:
			m.preview = &imagePreview{name: e.Name, mime: e.MIME, size: e.Size}

		case portal.ClearImageSelection:
			m.preview = nil
			m.predictVals.imagePath = ""

		case portal.ProfileView:
			pv := e
			m.profView = &pv
			if e.Editable {
				m.profVals = profileValues{
					name:     e.User.Name,
					village:  e.User.Village,
					mandal:   e.User.Mandal,
					district: e.User.District,
				}
				m.profForm = buildProfileForm(&m.profVals)
				cmds = append(cmds, m.profForm.Init())
			} else {
				m.profForm = nil
			}
		}
	}

	return cmds
}

// buildAuthForm builds the card for the session's active tab.
func (m *Model) buildAuthForm() *huh.Form {
	if m.ctrl.Session().ActiveTab == session.TabLogin {
		return buildLoginForm(&m.authVals)
	}
	return buildRegisterForm(&m.authVals)
}

func menuIndex(p portal.Panel) int {
	for i, item := range portal.MenuPanels() {
		if item == p {
			return i
		}
	}
	return -1
}
