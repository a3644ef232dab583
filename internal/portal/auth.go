package portal

// Auth/OTP flow: Idle -> OtpRequested -> Verified, with a retry loop where
// every re-request replaces the pending code.

import (
	"context"
	"strings"

	"github.com/avrlabs/cattleport/internal/backend"
	"github.com/avrlabs/cattleport/internal/session"
)

// SwitchTab activates the register or login card and clears stale state
// from the other one.
func (c *Controller) SwitchTab(tab session.Tab) []Effect {
	c.sess.SwitchTab(tab)
	return []Effect{
		SetAuthTab{Tab: tab},
		HideOTPEntry{},
		ClearMessages{Regions: []Region{RegionRegister, RegionLogin, RegionOTP}},
	}
}

// RequestOTP validates the form locally and asks the backend to issue a
// code. Local validation failures never reach the backend.
func (c *Controller) RequestOTP(ctx context.Context, registering bool, form AuthForm) []Effect {
	region := RegionLogin
	if registering {
		region = RegionRegister
	}
	effects := []Effect{ClearMessages{Regions: []Region{region, RegionOTP}}}

	if strings.TrimSpace(form.Mobile) == "" || (registering && strings.TrimSpace(form.Name) == "") {
		return append(effects, ShowMessage{
			Region: region,
			Text:   "Name and Mobile number are required.",
			Tone:   ToneError,
		})
	}

	info := backend.SignupInfo{Mobile: form.Mobile}
	if registering {
		info = backend.SignupInfo{
			Name:     form.Name,
			Mobile:   form.Mobile,
			Village:  form.Village,
			Mandal:   form.Mandal,
			District: form.District,
		}
	}

	receipt, err := c.backend.RequestOTP(ctx, info, registering)
	if err != nil {
		return append(effects, ShowMessage{Region: region, Text: errorText(err), Tone: ToneError})
	}

	if registering {
		c.regForm = form
		c.sess.SwitchTab(session.TabRegister)
	} else {
		c.loginForm = form
		c.sess.SwitchTab(session.TabLogin)
	}
	c.sess.BeginOTP(receipt.Code)

	return append(effects,
		ShowOTPEntry{},
		ShowMessage{Region: RegionOTP, Text: receipt.Message, Tone: ToneSuccess},
	)
}

// VerifyOTP forwards the submitted code. Success establishes the user
// identity from whichever auth card was last active and converges on the
// dashboard; failure leaves everything as it was.
func (c *Controller) VerifyOTP(ctx context.Context, code string) []Effect {
	effects := []Effect{ClearMessages{Regions: []Region{RegionOTP}}}

	msg, err := c.backend.VerifyOTP(ctx, code)
	if err != nil {
		return append(effects, ShowMessage{Region: RegionOTP, Text: errorText(err), Tone: ToneError})
	}

	c.sess.CompleteOTP(c.verifiedUser())

	effects = append(effects, ShowMessage{Region: RegionOTP, Text: msg, Tone: ToneSuccess})
	return append(effects,
		ShowPanel{Panel: PanelDashboard},
		MarkMenu{Panel: PanelDashboard},
		ShowStats{Stats: c.stats},
	)
}

// ResendOTP re-issues the pending code without re-validating the form.
func (c *Controller) ResendOTP(ctx context.Context) []Effect {
	effects := []Effect{ClearMessages{Regions: []Region{RegionOTP}}}

	receipt, err := c.backend.ResendOTP(ctx)
	if err != nil {
		return append(effects, ShowMessage{Region: RegionOTP, Text: errorText(err), Tone: ToneError})
	}

	c.sess.BeginOTP(receipt.Code)
	return append(effects, ShowMessage{Region: RegionOTP, Text: receipt.Message, Tone: ToneSuccess})
}

// Logout unconditionally resets the whole session and returns to the auth
// panel with the registration tab active.
func (c *Controller) Logout() []Effect {
	c.sess.Clear()
	c.step = 1
	c.image = nil
	c.lastResult = nil

	return []Effect{
		ShowPanel{Panel: PanelAuth},
		MarkMenu{None: true},
		SetAuthTab{Tab: session.TabRegister},
		HideOTPEntry{},
		ClearMessages{},
		SetWizardStep{Step: 1},
	}
}

// MockLogin authenticates a canned farmer directly. Only available in mock
// mode; a no-op elsewhere.
func (c *Controller) MockLogin() []Effect {
	if !c.mock {
		return nil
	}
	c.sess.CompleteOTP(session.User{
		Name:     "Test Farmer (Mock Btn)",
		Mobile:   "9876543210",
		Village:  "Mock Village",
		Mandal:   "Mock Mandal",
		District: "Mock District",
		Role:     "farmer",
	})
	return []Effect{
		ShowPanel{Panel: PanelDashboard},
		MarkMenu{Panel: PanelDashboard},
		ShowStats{Stats: c.stats},
	}
}

// verifiedUser builds the post-verification identity from the last active
// auth card. Unfilled registration fields fall back to placeholders; the
// login card only captures a mobile number, so the rest of the identity is
// a placeholder until the profile is edited.
func (c *Controller) verifiedUser() session.User {
	if c.sess.ActiveTab == session.TabLogin {
		return session.User{
			Name:     "Login User",
			Mobile:   fallback(c.loginForm.Mobile, "N/A"),
			Village:  "Login Village",
			Mandal:   "Login Mandal",
			District: "Login District",
			Role:     "farmer",
		}
	}
	return session.User{
		Name:     fallback(c.regForm.Name, "New Farmer"),
		Mobile:   fallback(c.regForm.Mobile, "N/A"),
		Village:  fallback(c.regForm.Village, "Not provided"),
		Mandal:   fallback(c.regForm.Mandal, "Not provided"),
		District: fallback(c.regForm.District, "Not provided"),
		Role:     "farmer",
	}
}

func fallback(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
