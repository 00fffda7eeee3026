package render

import "strconv"

// Actions carried in data-action attributes.
const (
	ActionDetails    = "details"
	ActionRemove     = "remove"
	ActionBack       = "back"
	ActionToggleForm = "toggle-form"
)

// Views reported to metrics and logs.
const (
	ViewList   = "list"
	ViewDetail = "detail"
	ViewForm   = "form"
	ViewNotice = "notice"
)

// Element identifiers and classes that make up the markup contract.
const (
	FormID           = "new-player"
	BackButtonID     = "back-button"
	ToggleButtonID   = "toggle-form-button"
	CardClass        = "player-card"
	DetailCardClass  = "single-player-card"
	DetailsClass     = "details-button"
	RemoveClass      = "remove-button"
	NoticeClass      = "success-message"
	DefaultNoticeMsg = "Player added to the roster!"
)

// Form action paths the rendered buttons post to.
const (
	SubmitPath = "/players"
	BackPath   = "/back"
	TogglePath = "/form/toggle"
)

// DetailsPath is the form action for a card's details button.
func DetailsPath(id int) string {
	return "/players/" + strconv.Itoa(id) + "/details"
}

// RemovePath is the form action for a card's remove button.
func RemovePath(id int) string {
	return "/players/" + strconv.Itoa(id) + "/remove"
}
