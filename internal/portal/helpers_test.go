package portal

import (
	"context"
	"testing"

	"github.com/avrlabs/cattleport/internal/backend"
	"github.com/avrlabs/cattleport/internal/session"
)

// newMockController wires a controller over the mock backend with the fixed
// test OTP and no delays.
func newMockController() (*Controller, *backend.Mock) {
	m := backend.NewMock(backend.MockOptions{OTP: "123456", Seed: 1})
	c := New(session.New(), m, nil, true)
	return c, m
}

// authenticate drives the registration flow to a verified session.
func authenticate(t *testing.T, c *Controller) {
	t.Helper()
	ctx := context.Background()
	effects := c.RequestOTP(ctx, true, AuthForm{Name: "Test", Mobile: "9876543210"})
	if msg, ok := messageAt(effects, RegionRegister); ok && msg.Tone == ToneError {
		t.Fatalf("OTP request failed: %s", msg.Text)
	}
	effects = c.VerifyOTP(ctx, "123456")
	if !c.Session().Authenticated() {
		t.Fatalf("verification did not authenticate; effects: %#v", effects)
	}
}

// shownPanel returns the last ShowPanel effect.
func shownPanel(effects []Effect) (Panel, bool) {
	var p Panel
	found := false
	for _, e := range effects {
		if sp, ok := e.(ShowPanel); ok {
			p = sp.Panel
			found = true
		}
	}
	return p, found
}

// markedMenu returns the last MarkMenu effect.
func markedMenu(effects []Effect) (MarkMenu, bool) {
	var m MarkMenu
	found := false
	for _, e := range effects {
		if mm, ok := e.(MarkMenu); ok {
			m = mm
			found = true
		}
	}
	return m, found
}

// messageAt returns the last ShowMessage for a region.
func messageAt(effects []Effect, region Region) (ShowMessage, bool) {
	var msg ShowMessage
	found := false
	for _, e := range effects {
		if m, ok := e.(ShowMessage); ok && m.Region == region {
			msg = m
			found = true
		}
	}
	return msg, found
}

func hasAlert(effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(Alert); ok {
			return true
		}
	}
	return false
}

func hasStats(effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(ShowStats); ok {
			return true
		}
	}
	return false
}

func wizardStep(effects []Effect) (SetWizardStep, bool) {
	var s SetWizardStep
	found := false
	for _, e := range effects {
		if ws, ok := e.(SetWizardStep); ok {
			s = ws
			found = true
		}
	}
	return s, found
}

func shownResult(effects []Effect) (ShowResult, bool) {
	for _, e := range effects {
		if r, ok := e.(ShowResult); ok {
			return r, true
		}
	}
	return ShowResult{}, false
}

func profileView(effects []Effect) (ProfileView, bool) {
	var pv ProfileView
	found := false
	for _, e := range effects {
		if v, ok := e.(ProfileView); ok {
			pv = v
			found = true
		}
	}
	return pv, found
}

// countingBackend wraps a Backend and counts calls, for asserting that
// rejected paths never reach the backend.
type countingBackend struct {
	backend.Backend
	saveCalls    int
	predictCalls int
	requestCalls int
}

func (b *countingBackend) SaveCattle(ctx context.Context, rec backend.CattleSubmission) (string, error) {
	b.saveCalls++
	return b.Backend.SaveCattle(ctx, rec)
}

func (b *countingBackend) Predict(ctx context.Context, req backend.PredictionRequest) (backend.PredictionResult, error) {
	b.predictCalls++
	return b.Backend.Predict(ctx, req)
}

func (b *countingBackend) RequestOTP(ctx context.Context, info backend.SignupInfo, registering bool) (backend.OTPReceipt, error) {
	b.requestCalls++
	return b.Backend.RequestOTP(ctx, info, registering)
}

// failingBackend rejects everything with a fixed server error.
type failingBackend struct{ msg string }

func (b failingBackend) RequestOTP(context.Context, backend.SignupInfo, bool) (backend.OTPReceipt, error) {
	return backend.OTPReceipt{}, &backend.ServerError{Message: b.msg}
}
func (b failingBackend) VerifyOTP(context.Context, string) (string, error) {
	return "", &backend.ServerError{Message: b.msg}
}
func (b failingBackend) ResendOTP(context.Context) (backend.OTPReceipt, error) {
	return backend.OTPReceipt{}, &backend.ServerError{Message: b.msg}
}
func (b failingBackend) SaveCattle(context.Context, backend.CattleSubmission) (string, error) {
	return "", &backend.ServerError{Message: b.msg}
}
func (b failingBackend) Predict(context.Context, backend.PredictionRequest) (backend.PredictionResult, error) {
	return backend.PredictionResult{}, &backend.ServerError{Message: b.msg}
}
func (b failingBackend) UpdateProfile(context.Context, backend.ProfileUpdate) (backend.ProfileUpdate, error) {
	return backend.ProfileUpdate{}, &backend.ServerError{Message: b.msg}
}

// Minimal JPEG header accepted by content sniffing.
var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00}
