package gobucket

import "time"

// Link is a single hyperlink in a resource's links object.
type Link struct {
	Href string `json:"href,omitempty"`
	Name string `json:"name,omitempty"`
}

// Links holds the hyperlinks Bitbucket attaches to most resources.
type Links struct {
	Self   *Link  `json:"self,omitempty"`
	HTML   *Link  `json:"html,omitempty"`
	Avatar *Link  `json:"avatar,omitempty"`
	Clone  []Link `json:"clone,omitempty"`
}

// Account is a Bitbucket user or team account.
//
// Username is only populated for legacy accounts;
// Bitbucket deprecated usernames in favor of account IDs,
// so most lookups should go through Nickname or AccountID.
type Account struct {
	UUID        string `json:"uuid,omitempty"`
	Username    string `json:"username,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
	Links       *Links `json:"links,omitempty"`
}

// User is a full user profile.
type User struct {
	Account

	Website   string     `json:"website,omitempty"`
	Location  string     `json:"location,omitempty"`
	CreatedOn *time.Time `json:"created_on,omitempty"`
}

// Email is an email address registered to the current user.
type Email struct {
	Email       string `json:"email"`
	IsPrimary   bool   `json:"is_primary,omitempty"`
	IsConfirmed bool   `json:"is_confirmed,omitempty"`
}

// Workspace is a Bitbucket workspace.
type Workspace struct {
	UUID      string `json:"uuid,omitempty"`
	Slug      string `json:"slug,omitempty"`
	Name      string `json:"name,omitempty"`
	IsPrivate bool   `json:"is_private,omitempty"`
	Links     *Links `json:"links,omitempty"`
}

// WorkspaceMembership associates a user with a workspace.
type WorkspaceMembership struct {
	User      Account   `json:"user"`
	Workspace Workspace `json:"workspace"`
}

// Project is a workspace project grouping repositories.
type Project struct {
	UUID        string     `json:"uuid,omitempty"`
	Key         string     `json:"key,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	IsPrivate   bool       `json:"is_private,omitempty"`
	Links       *Links     `json:"links,omitempty"`
	CreatedOn   *time.Time `json:"created_on,omitempty"`
	UpdatedOn   *time.Time `json:"updated_on,omitempty"`
}

// Repository is a Bitbucket repository.
type Repository struct {
	UUID        string     `json:"uuid,omitempty"`
	Name        string     `json:"name,omitempty"`
	Slug        string     `json:"slug,omitempty"`
	FullName    string     `json:"full_name,omitempty"`
	Description string     `json:"description,omitempty"`
	SCM         string     `json:"scm,omitempty"`
	IsPrivate   bool       `json:"is_private,omitempty"`
	ForkPolicy  string     `json:"fork_policy,omitempty"`
	Language    string     `json:"language,omitempty"`
	Size        int64      `json:"size,omitempty"`
	Owner       *Account   `json:"owner,omitempty"`
	Project     *Project   `json:"project,omitempty"`
	MainBranch  *Branch    `json:"mainbranch,omitempty"`
	Links       *Links     `json:"links,omitempty"`
	CreatedOn   *time.Time `json:"created_on,omitempty"`
	UpdatedOn   *time.Time `json:"updated_on,omitempty"`
}

// Branch is a repository branch ref.
type Branch struct {
	Name   string  `json:"name,omitempty"`
	Type   string  `json:"type,omitempty"`
	Target *Commit `json:"target,omitempty"`
}

// Tag is a repository tag ref.
type Tag struct {
	Name   string  `json:"name,omitempty"`
	Target *Commit `json:"target,omitempty"`
}

// Commit is a single commit.
// Bitbucket returns abbreviated 12-character hashes in some endpoints.
type Commit struct {
	Hash    string        `json:"hash,omitempty"`
	Message string        `json:"message,omitempty"`
	Date    *time.Time    `json:"date,omitempty"`
	Author  *CommitAuthor `json:"author,omitempty"`
	Links   *Links        `json:"links,omitempty"`
}

// CommitAuthor is the author of a commit.
// Raw is the git author line; User is set
// when Bitbucket can map it to an account.
type CommitAuthor struct {
	Raw  string   `json:"raw,omitempty"`
	User *Account `json:"user,omitempty"`
}

// BranchRef names a branch inside a pull request endpoint.
type BranchRef struct {
	Name string `json:"name"`
}

// PullRequestEndpoint is the source or destination of a pull request.
type PullRequestEndpoint struct {
	Branch     BranchRef   `json:"branch"`
	Commit     *Commit     `json:"commit,omitempty"`
	Repository *Repository `json:"repository,omitempty"`
}

// Pull request states as reported by the API.
const (
	PullRequestOpen       = "OPEN"
	PullRequestMerged     = "MERGED"
	PullRequestDeclined   = "DECLINED"
	PullRequestSuperseded = "SUPERSEDED"
)

// PullRequest is a Bitbucket pull request.
type PullRequest struct {
	ID                int64                `json:"id,omitempty"`
	Title             string               `json:"title,omitempty"`
	Description       string               `json:"description,omitempty"`
	State             string               `json:"state,omitempty"`
	Draft             bool                 `json:"draft,omitempty"`
	Author            *Account             `json:"author,omitempty"`
	Source            PullRequestEndpoint  `json:"source"`
	Destination       *PullRequestEndpoint `json:"destination,omitempty"`
	Reviewers         []Account            `json:"reviewers,omitempty"`
	Participants      []Participant        `json:"participants,omitempty"`
	CloseSourceBranch bool                 `json:"close_source_branch,omitempty"`
	MergeCommit       *Commit              `json:"merge_commit,omitempty"`
	CommentCount      int                  `json:"comment_count,omitempty"`
	TaskCount         int                  `json:"task_count,omitempty"`
	Links             *Links               `json:"links,omitempty"`
	CreatedOn         *time.Time           `json:"created_on,omitempty"`
	UpdatedOn         *time.Time           `json:"updated_on,omitempty"`
}

// Participant is a user participating in a pull request.
type Participant struct {
	User     Account    `json:"user"`
	Role     string     `json:"role,omitempty"`
	State    string     `json:"state,omitempty"`
	Approved bool       `json:"approved,omitempty"`
	Date     *time.Time `json:"participated_on,omitempty"`
}

// Content is rendered text content attached to comments and descriptions.
type Content struct {
	Raw    string `json:"raw"`
	Markup string `json:"markup,omitempty"`
	HTML   string `json:"html,omitempty"`
}

// InlineComment locates a comment within a file diff.
type InlineComment struct {
	Path string `json:"path"`
	From *int   `json:"from,omitempty"`
	To   *int   `json:"to,omitempty"`
}

// Resolution records that an inline comment thread was resolved.
type Resolution struct {
	Type string   `json:"type,omitempty"`
	User *Account `json:"user,omitempty"`
}

// Comment is a comment on a pull request.
type Comment struct {
	ID         int64          `json:"id,omitempty"`
	Content    Content        `json:"content"`
	User       *Account       `json:"user,omitempty"`
	Deleted    bool           `json:"deleted,omitempty"`
	Pending    bool           `json:"pending,omitempty"`
	Inline     *InlineComment `json:"inline,omitempty"`
	Resolution *Resolution    `json:"resolution,omitempty"`
	Links      *Links         `json:"links,omitempty"`
	CreatedOn  *time.Time     `json:"created_on,omitempty"`
	UpdatedOn  *time.Time     `json:"updated_on,omitempty"`
}

// Approval records a pull request approval event.
type Approval struct {
	Date *time.Time `json:"date,omitempty"`
	User *Account   `json:"user,omitempty"`
}

// ActivityUpdate is a state or content change in a pull request's history.
type ActivityUpdate struct {
	State       string               `json:"state,omitempty"`
	Title       string               `json:"title,omitempty"`
	Date        *time.Time           `json:"date,omitempty"`
	Author      *Account             `json:"author,omitempty"`
	Source      *PullRequestEndpoint `json:"source,omitempty"`
	Destination *PullRequestEndpoint `json:"destination,omitempty"`
}

// Activity is a single entry in a pull request's activity feed.
// Exactly one of its fields is set per entry.
type Activity struct {
	Update   *ActivityUpdate `json:"update,omitempty"`
	Approval *Approval       `json:"approval,omitempty"`
	Comment  *Comment        `json:"comment,omitempty"`
}

// SrcEntry is a file or directory in a repository's source tree.
type SrcEntry struct {
	Path   string  `json:"path,omitempty"`
	Type   string  `json:"type,omitempty"` // commit_file or commit_directory
	Size   int64   `json:"size,omitempty"`
	Commit *Commit `json:"commit,omitempty"`
	Links  *Links  `json:"links,omitempty"`
}
