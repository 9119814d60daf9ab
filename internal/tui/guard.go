package tui

import "github.com/blocksim/tui-go/internal/session"

// View identifies one addressable screen.
type View int

const (
	ViewLogin View = iota
	ViewSignup
	ViewForgotPassword
	ViewVerifyOTP
	ViewResetPassword
	ViewDashboard
	ViewTransactions
	ViewMine
	ViewChain
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewSignup:
		return "signup"
	case ViewForgotPassword:
		return "forgot-password"
	case ViewVerifyOTP:
		return "verify-otp"
	case ViewResetPassword:
		return "reset-password"
	case ViewDashboard:
		return "dashboard"
	case ViewTransactions:
		return "transactions"
	case ViewMine:
		return "mine"
	case ViewChain:
		return "chain"
	default:
		return "unknown"
	}
}

// protected reports whether the view requires an authenticated session.
// Everything that is not protected is public-only: it never renders for an
// authenticated user.
func (v View) protected() bool {
	switch v {
	case ViewDashboard, ViewTransactions, ViewMine, ViewChain:
		return true
	default:
		return false
	}
}

// GuardState is the route guard's resolution state.
type GuardState int

const (
	// GuardLoading holds until the persisted session has been restored;
	// nothing protected may render before then.
	GuardLoading GuardState = iota
	GuardPublic
	GuardProtected
)

// Guard decides which views may render given session status. It is
// re-evaluated on every navigation.
type Guard struct {
	state GuardState
}

// NewGuard starts in Loading.
func NewGuard() Guard {
	return Guard{state: GuardLoading}
}

// Resolve moves the guard out of Loading based on session status. It is
// called once session restore completes and again after every status
// change.
func (g *Guard) Resolve(status session.Status) {
	if status == session.Authenticated {
		g.state = GuardProtected
	} else {
		g.state = GuardPublic
	}
}

// State returns the guard's current resolution.
func (g *Guard) State() GuardState {
	return g.state
}

// Route gates a navigation request: it returns the view that actually
// renders. Unauthenticated users asking for protected views land on login;
// authenticated users asking for public-only views land on the dashboard.
// While Loading the requested view is returned unchanged; the caller must
// not render until the guard resolves.
func (g *Guard) Route(requested View) View {
	switch g.state {
	case GuardLoading:
		return requested
	case GuardProtected:
		if !requested.protected() {
			return ViewDashboard
		}
	case GuardPublic:
		if requested.protected() {
			return ViewLogin
		}
	}
	return requested
}
