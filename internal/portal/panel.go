package portal

// Panel identifies a mutually-exclusive top-level view. Exactly one primary
// panel is visible at a time; before authentication only PanelAuth (and its
// sub-cards) is reachable.
type Panel int

const (
	PanelAuth Panel = iota
	PanelDashboard
	PanelProfile
	PanelPredictor
	PanelFarmers
	PanelEstrous
	PanelBot
	PanelRemedies
	PanelViewer
	PanelLocations
	PanelCount
	PanelPodcast
)

// panelInfo carries display metadata for the sidebar menu.
type panelInfo struct {
	id    string
	title string
}

var panels = map[Panel]panelInfo{
	PanelAuth:      {"auth", "Login / Register"},
	PanelDashboard: {"dashboard", "Dashboard"},
	PanelProfile:   {"profile", "My Profile"},
	PanelPredictor: {"predictor", "Disease Predictor"},
	PanelFarmers:   {"farmers", "Registered Farmers"},
	PanelEstrous:   {"estrous", "Estrous Monitoring"},
	PanelBot:       {"bot", "AVR Bot"},
	PanelRemedies:  {"remedies", "Traditional Remedies"},
	PanelViewer:    {"viewer", "Image Viewer"},
	PanelLocations: {"locations", "Locations"},
	PanelCount:     {"count", "Cattle Count"},
	PanelPodcast:   {"podcast", "Podcasts"},
}

// String returns the panel's stable identifier.
func (p Panel) String() string {
	if info, ok := panels[p]; ok {
		return info.id
	}
	return "unknown"
}

// Title returns the panel's menu/display title.
func (p Panel) Title() string {
	if info, ok := panels[p]; ok {
		return info.title
	}
	return "Unknown"
}

// Protected reports whether the panel requires an authenticated session.
// Everything except the auth panel is protected.
func (p Panel) Protected() bool {
	return p != PanelAuth
}

// MenuPanels returns the protected panels in sidebar order.
func MenuPanels() []Panel {
	return []Panel{
		PanelDashboard,
		PanelProfile,
		PanelPredictor,
		PanelFarmers,
		PanelEstrous,
		PanelBot,
		PanelRemedies,
		PanelViewer,
		PanelLocations,
		PanelCount,
		PanelPodcast,
	}
}

// PanelByID resolves a panel identifier. ok is false for unknown ids,
// including the empty string (a menu affordance not bound to a panel).
func PanelByID(id string) (Panel, bool) {
	for p, info := range panels {
		if info.id == id {
			return p, true
		}
	}
	return PanelAuth, false
}

// DashboardStats are the herd counters shown on the dashboard.
type DashboardStats struct {
	Farmers int
	Cows    int
	Bulls   int
}

// Total returns the combined herd size.
func (s DashboardStats) Total() int {
	return s.Cows + s.Bulls
}

// defaultStats matches the portal's seeded counters.
var defaultStats = DashboardStats{Farmers: 130, Cows: 350, Bulls: 80}
