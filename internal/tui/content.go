package tui

import (
	"fmt"

	"github.com/avrlabs/cattleport/internal/portal"
)

// Static copy for the feature placeholder panels. These sections have no
// interactive behavior; navigating to them only swaps the visible panel.
var panelContent = map[portal.Panel]string{
	portal.PanelFarmers: "Directory of farmers registered with the AVR cattle health program.\n\n" +
		"Farmer records are synced from the field registration drives and include " +
		"village, mandal and herd size. Detailed listings arrive with the next data sync.",

	portal.PanelEstrous: "Estrous cycle monitoring for tracked cattle.\n\n" +
		"Upload activity data from collar sensors to view heat predictions and " +
		"insemination windows for each animal.",

	portal.PanelBot: "AVR Bot answers questions about cattle health, feeding schedules and " +
		"vaccination timelines, in Telugu and English.",

	portal.PanelRemedies: "Traditional remedies documented by the AVR field team.\n\n" +
		"Ethno-veterinary preparations for common conditions: wound care, " +
		"deworming, skin infections and digestive trouble. Always consult the vet " +
		"team before use.",

	portal.PanelViewer: "Image viewer for submitted cattle photographs.\n\n" +
		"Browse the photos attached to past predictions and field reports.",

	portal.PanelLocations: "Program locations and coverage map.\n\n" +
		"Villages and mandals currently covered by AVR field operations, with " +
		"the nearest veterinary contact for each.",

	portal.PanelCount: "Cattle count from aerial and pen photographs.\n\n" +
		"Upload a herd photo to get an automated head count.",

	portal.PanelPodcast: "AVR podcasts on cattle care, seasonal disease alerts and dairy " +
		"best practices.\n\nNew episodes are published monthly in Telugu.",
}

// placeholderContent personalizes the static copy from the session where
// the original did: the farmer list leads with the signed-in farmer, the
// bot greets by name, the viewer mentions the cattle in progress.
func (m *Model) placeholderContent(p portal.Panel) string {
	text, ok := panelContent[p]
	if !ok {
		return "Nothing here yet."
	}

	sess := m.ctrl.Session()
	switch p {
	case portal.PanelFarmers:
		if u := sess.User; u != nil {
			text = fmt.Sprintf("1. %s — %s, %s", u.Name, u.Village, u.District) + "\n\n" + text
		}
	case portal.PanelBot:
		if u := sess.User; u != nil {
			text = fmt.Sprintf("Hello %s! How can I help with your cattle today?", u.Name) + "\n\n" + text
		}
	case portal.PanelViewer:
		if rec := sess.Cattle; rec != nil {
			text += fmt.Sprintf("\n\nMost recent submission: cattle %s.", rec.ID)
		}
	}
	return text
}
