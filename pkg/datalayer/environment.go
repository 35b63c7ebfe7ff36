package datalayer

// Environment is the host capability the data layer reads page and identity
// context from. In a browser-backed host this maps to location, document
// title, and persisted identity; on a server it is whatever the render
// context knows about the request.
//
// A nil Environment means headless mode: Emit returns the bare envelope
// without queue append or sequencing, so server-rendered code paths can call
// the same instrumentation without side effects.
type Environment interface {
	// PagePath returns the current page path (e.g. "/mens/footwear").
	PagePath() string

	// PageTitle returns the current document title.
	PageTitle() string

	// PageURL returns the full current URL.
	PageURL() string

	// HashedIdentity returns the persisted hashed user identifier, or ""
	// for an anonymous visitor.
	HashedIdentity() string
}

// StaticEnvironment is a fixed-value Environment for servers and tests.
type StaticEnvironment struct {
	Path     string
	Title    string
	URL      string
	Identity string
}

// PagePath implements Environment.
func (e *StaticEnvironment) PagePath() string { return e.Path }

// PageTitle implements Environment.
func (e *StaticEnvironment) PageTitle() string { return e.Title }

// PageURL implements Environment.
func (e *StaticEnvironment) PageURL() string { return e.URL }

// HashedIdentity implements Environment.
func (e *StaticEnvironment) HashedIdentity() string { return e.Identity }

// UserInfo is the derived session user state injected alongside site info
// into the first event of a session.
type UserInfo struct {
	UserState  string `json:"user_state"`
	LoginState string `json:"login_state"`
	UEMHashed  string `json:"uem_hashed"`
	SessionID  string `json:"session_id"`
	DivisionID string `json:"division_id"`
}
