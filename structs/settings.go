package structs

type SettingsPatch struct {
	BackgroundColor *string `json:"backgroundColor" validate:"omitempty,hsltriple"`
	TextColor       *string `json:"textColor" validate:"omitempty,hsltriple"`
	PrimaryColor    *string `json:"primaryColor" validate:"omitempty,hsltriple"`
}
