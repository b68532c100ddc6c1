package bridge

// Action names one dispatch branch.
type Action string

const (
	ActionRequestPermission Action = "reqPerm"
	ActionAddCard           Action = "addCard"
	ActionAddCardWithImage  Action = "addCardWithImage"
	ActionGetDecks          Action = "getDecks"
	ActionGetDecksMobile    Action = "getDecksMobile"
	ActionGetOS             Action = "getOs"
)

// Actions lists every recognized action in dispatch-table order.
func Actions() []Action {
	return []Action{
		ActionRequestPermission,
		ActionAddCard,
		ActionAddCardWithImage,
		ActionGetDecks,
		ActionGetDecksMobile,
		ActionGetOS,
	}
}

// Known reports whether a is one of the recognized actions.
func (a Action) Known() bool {
	for _, known := range Actions() {
		if a == known {
			return true
		}
	}
	return false
}

// ActionRequest is the argument bundle delivered by the host for one render.
type ActionRequest struct {
	Action Action `json:"action"`
	Deck   string `json:"deck,omitempty"`
	Image  []byte `json:"image,omitempty"`
	Front  string `json:"front,omitempty"`
	Back   string `json:"back,omitempty"`
	Tags   string `json:"tags,omitempty"`
}
