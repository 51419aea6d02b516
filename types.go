package goEntitle

import "time"

// Route is a navigation target computed by the gate or attached to a flow
// result. The outer navigation shell owns the actual screen transition.
type Route uint8

const (
	// RouteLoading means hydration has not finished; render nothing yet.
	RouteLoading Route = iota
	// RouteOnboarding is the first-launch onboarding pass.
	RouteOnboarding
	// RouteForum is the public teaser experience for unauthenticated users.
	RouteForum
	// RoutePayment is the subscription prompt for connected non-premium users.
	RoutePayment
	// RouteChat is the premium experience.
	RouteChat
	// RouteConnexion is the login screen. The gate never returns it; it
	// appears in flow results (e.g. a duplicate-registration redirect).
	RouteConnexion
)

// String describes the route for logs and the developer tools.
func (r Route) String() string {
	switch r {
	case RouteLoading:
		return "loading"
	case RouteOnboarding:
		return "onboarding"
	case RouteForum:
		return "forum"
	case RoutePayment:
		return "payment"
	case RouteChat:
		return "chat"
	case RouteConnexion:
		return "connexion"
	}
	return "unknown"
}

// SessionState is the in-memory session snapshot exposed by [Engine.State].
//
// Hydrated is false until the first store read has completed; the gate
// returns [RouteLoading] while it is false. Connected mirrors token
// presence; the stored connexion flag never overrides it.
type SessionState struct {
	Hydrated  bool
	Onboarded bool
	Connected bool
	Premium   bool
	Token     string
	InstallID string
}

// UserProfile is the authoritative user record shown on the profile screen.
type UserProfile struct {
	Name    string
	Premium bool
}

// LoginResult is returned by [Engine.Login] on success.
type LoginResult struct {
	Premium bool
	// Route is the gate's decision after the session was persisted:
	// RouteChat for premium accounts, RoutePayment otherwise.
	Route Route
}

// RegisterResult is returned by [Engine.Register]. On a duplicate-account
// answer it accompanies [ErrUserExists] and carries the delayed redirect
// the shell should perform; no token is persisted in that case.
type RegisterResult struct {
	Premium bool
	Route   Route
	// RedirectDelay is non-zero when the shell should wait before
	// navigating (duplicate-account flow).
	RedirectDelay time.Duration
}

// User-facing notice texts. The app ships in French; the notice timeline
// carries these verbatim.
const (
	MsgFillAllFields        = "Veuillez remplir tous les champs."
	MsgPasswordsDiffer      = "Les mots de passe ne correspondent pas."
	MsgInvalidPassword      = "Mot de passe invalide."
	MsgUserNotFound         = "Utilisateur non trouvé."
	MsgUserExists           = "L'utilisateur existe déjà."
	MsgLoginFailed          = "Une erreur est survenue lors de la connexion."
	MsgRegistrationFailed   = "Une erreur est survenue lors de l'inscription."
	MsgPaymentNumberInvalid = "Veuillez entrer un numéro valide (8 chiffres)."
	MsgUpgradeRequestSent   = "Demande envoyée avec succès. La vérification prend 2H"
	MsgUpgradeRequestFailed = "Une erreur est survenue. Merci de réessayer."
)
