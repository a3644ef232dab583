package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/avrlabs/cattleport/internal/predictor"
)

// Form value holders. The model owns one of each; huh fields bind to the
// struct fields so values survive form rebuilds.

type authValues struct {
	name     string
	mobile   string
	village  string
	mandal   string
	district string
}

type otpValues struct {
	code string
}

type cattleValues struct {
	id     string
	gender string
	age    string
}

type predictValues struct {
	imagePath   string
	diseaseType string
}

type profileValues struct {
	name     string
	village  string
	mandal   string
	district string
}

func buildRegisterForm(v *authValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Key("reg_name").
				Value(&v.name),
			huh.NewInput().
				Title("Mobile Number").
				Description("10 digits, starting 6-9.").
				Key("reg_mobile").
				Value(&v.mobile),
			huh.NewInput().
				Title("Village").
				Key("reg_village").
				Value(&v.village),
			huh.NewInput().
				Title("Mandal").
				Key("reg_mandal").
				Value(&v.mandal),
			huh.NewInput().
				Title("District").
				Key("reg_district").
				Value(&v.district),
		),
	).WithShowHelp(false)
}

func buildLoginForm(v *authValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Mobile Number").
				Description("The number you registered with.").
				Key("login_mobile").
				Value(&v.mobile),
		),
	).WithShowHelp(false)
}

func buildOTPForm(v *otpValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enter OTP").
				Description("6-digit code.").
				Key("otp_code").
				Value(&v.code),
		),
	).WithShowHelp(false)
}

func buildCattleForm(v *cattleValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cattle ID").
				Key("cattle_id").
				Value(&v.id),
			huh.NewSelect[string]().
				Title("Gender").
				Key("cattle_gender").
				Options(
					huh.NewOption("Female", "female"),
					huh.NewOption("Male", "male"),
				).
				Value(&v.gender),
			huh.NewInput().
				Title("Age (years)").
				Key("cattle_age").
				Value(&v.age),
		),
	).WithShowHelp(false)
}

func buildPredictForm(v *predictValues) *huh.Form {
	diseaseOpts := make([]huh.Option[string], 0, len(predictor.DiseaseTypes))
	for _, code := range predictor.DiseaseTypes {
		diseaseOpts = append(diseaseOpts, huh.NewOption(predictor.DiseaseTitle(code), code))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Image file").
				Description("Path to a JPG or PNG of the affected area.").
				Key("predict_image").
				Value(&v.imagePath),
			huh.NewSelect[string]().
				Title("Disease type").
				Key("predict_disease").
				Options(diseaseOpts...).
				Value(&v.diseaseType),
		),
	).WithShowHelp(false)
}

func buildProfileForm(v *profileValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Key("profile_name").
				Value(&v.name),
			huh.NewInput().
				Title("Village").
				Key("profile_village").
				Value(&v.village),
			huh.NewInput().
				Title("Mandal").
				Key("profile_mandal").
				Value(&v.mandal),
			huh.NewInput().
				Title("District").
				Key("profile_district").
				Value(&v.district),
		),
	).WithShowHelp(false)
}
