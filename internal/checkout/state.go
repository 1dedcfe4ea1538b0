package checkout

type State int

const (
	StateIdle State = iota
	StateLoadingCart
	StateReady
	StateMutating
	StateSubmitting
	StateSuccess
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:        "IDLE",
	StateLoadingCart: "LOADING_CART",
	StateReady:       "READY",
	StateMutating:    "MUTATING",
	StateSubmitting:  "SUBMITTING",
	StateSuccess:     "SUCCESS",
	StateFailed:      "FAILED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Busy reports whether a network operation owns the cart. FAILED counts: it is
// held while the cart is re-read after a failed purchase.
func (s State) Busy() bool {
	switch s {
	case StateLoadingCart, StateMutating, StateSubmitting, StateFailed:
		return true
	}
	return false
}
