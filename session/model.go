package session

// Snapshot is the point-in-time readout of the persisted session keys.
//
// Connected mirrors the stored connexion flag resolved against the token:
// the token is the source of truth, so Connected is true only when a token
// is present. ConnexionDrift reports that the two disagreed on disk.
type Snapshot struct {
	Token     string
	Connected bool
	Premium   bool
	Onboarded bool

	// InstallID identifies the installation, not the user. It is minted on
	// first load and survives Clear.
	InstallID string

	// ConnexionDrift is set when the stored connexion flag and the token
	// key disagreed (flag without token, or token without flag).
	ConnexionDrift bool

	// LegacyToken is set when the token was recovered from the legacy
	// userToken key rather than the canonical one.
	LegacyToken bool
}

// Empty reports whether the snapshot carries no authenticated session.
func (s Snapshot) Empty() bool {
	return s.Token == "" && !s.Connected && !s.Premium
}
