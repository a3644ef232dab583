package portal

// Profile editor: read-only by default, editable on explicit request.
// The session is only mutated after the backend accepts the update.

import (
	"context"

	"github.com/avrlabs/cattleport/internal/backend"
)

// BeginProfileEdit unlocks the profile form.
func (c *Controller) BeginProfileEdit() []Effect {
	if !c.sess.Authenticated() {
		return nil
	}
	return []Effect{
		ClearMessages{Regions: []Region{RegionProfile}},
		ProfileView{User: *c.sess.User, Editable: true, Avatar: c.sess.AvatarInitial()},
	}
}

// SaveProfile submits the edited fields. On failure the form stays editable
// and the session is untouched; on success the stored values are merged
// back, the avatar initial recomputed, and the form reverts to read-only.
func (c *Controller) SaveProfile(ctx context.Context, name, village, mandal, district string) []Effect {
	if !c.sess.Authenticated() {
		return nil
	}
	effects := []Effect{ClearMessages{Regions: []Region{RegionProfile}}}

	updated, err := c.backend.UpdateProfile(ctx, backend.ProfileUpdate{
		Name:     name,
		Village:  village,
		Mandal:   mandal,
		District: district,
	})
	if err != nil {
		return append(effects,
			ShowMessage{Region: RegionProfile, Text: errorText(err), Tone: ToneError},
			ProfileView{User: *c.sess.User, Editable: true, Avatar: c.sess.AvatarInitial()},
		)
	}

	c.sess.MergeProfile(updated.Name, updated.Village, updated.Mandal, updated.District)

	return append(effects,
		ShowMessage{Region: RegionProfile, Text: "Profile updated successfully!", Tone: ToneSuccess},
		ProfileView{User: *c.sess.User, Editable: false, Avatar: c.sess.AvatarInitial()},
	)
}
