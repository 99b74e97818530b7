package github

// Repository is the subset of the repository resource orbital inspects
type Repository struct {
	FullName      string                `json:"full_name"`
	HTMLURL       string                `json:"html_url"`
	DefaultBranch string                `json:"default_branch"`
	Private       bool                  `json:"private"`
	Permissions   RepositoryPermissions `json:"permissions"`
}

// RepositoryPermissions are the caller's permissions as reported by GitHub.
// They are only present for authenticated requests.
type RepositoryPermissions struct {
	Admin bool `json:"admin"`
	Push  bool `json:"push"`
	Pull  bool `json:"pull"`
}

// RepoConfig is the content of orbital.conf.json
type RepoConfig struct {
	BaseBranch           string `json:"baseBranch"`
	GlobalStylesFilePath string `json:"globalStylesFilePath"`
}

// PublishResult describes a successful publish
type PublishResult struct {
	Branch            string
	CommitSHA         string
	PullRequestNumber int
	PullRequestURL    string
}

// TokenInfo contains information about the authenticated token
type TokenInfo struct {
	User   string   `json:"user"`
	Scopes []string `json:"scopes"`
}
