package application

// GuardState is the gate over the authenticated area.
type GuardState int

const (
	GuardLoading GuardState = iota
	GuardAuthenticated
	GuardUnauthenticated
)

func (s GuardState) String() string {
	switch s {
	case GuardLoading:
		return "loading"
	case GuardAuthenticated:
		return "authenticated"
	case GuardUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// LoginEntryPoint is where unauthenticated visitors are sent.
const LoginEntryPoint = "login"

// GuardDecision is the outcome of evaluating the gate for a requested
// target. CapturedTarget records where the visitor was headed so a
// successful login could return there; nothing reads it back yet.
type GuardDecision struct {
	State          GuardState
	RedirectTo     string
	CapturedTarget string
}

// Allowed reports whether the requested content may be shown.
func (d GuardDecision) Allowed() bool {
	return d.State == GuardAuthenticated
}

// Guard gates access to authenticated commands based on session state.
type Guard struct {
	session *Session
}

func NewGuard(session *Session) *Guard {
	return &Guard{session: session}
}

// Evaluate resolves the gate for a requested target. While the session
// is still restoring the caller should wait, not redirect.
func (g *Guard) Evaluate(target string) GuardDecision {
	if g.session.IsLoading() {
		return GuardDecision{State: GuardLoading}
	}

	if !g.session.IsAuthenticated() {
		return GuardDecision{
			State:          GuardUnauthenticated,
			RedirectTo:     LoginEntryPoint,
			CapturedTarget: target,
		}
	}

	return GuardDecision{State: GuardAuthenticated}
}
