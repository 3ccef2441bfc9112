package models

type ServiceProvider struct {
	Name     string `json:"name"`
	Helpline string `json:"helpline"`
}

type TicketProvider struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// LocalHelpline lists the emergency contacts for one upazila.
type LocalHelpline struct {
	Police   string `json:"police"`
	Fire     string `json:"fire"`
	UNO      string `json:"uno"`
	Hospital string `json:"hospital"`
}
