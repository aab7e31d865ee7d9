package scan

// CommitInfo is the cheap, eagerly-available metadata of a commit. It is
// extracted without parsing diff content; Paths is the ordered list of file
// paths the commit touches and its length is the size used for batching.
type CommitInfo struct {
	Author string
	Email  string
	Date   string
	Paths  []string
}

// Scannable is one file's content at one commit. OwnerSHA ties it back to
// the commit that produced it; two scannables from different commits may
// share an identical path and content and stay distinguishable through it.
type Scannable struct {
	OwnerSHA string
	Path     string
	Content  string
}

// PatchParser materializes the scannables of a commit. It is expensive (it
// reads blob or diff content) and must only run when the commit's batch is
// dispatched.
type PatchParser func(c *Commit) ([]Scannable, error)

// Commit is a commit reference with lazily-evaluated content access.
// Scannables memoizes the parser result so the parser runs at most once.
type Commit struct {
	SHA  string
	Info CommitInfo

	parser PatchParser
	parsed bool
	files  []Scannable
	err    error
}

func NewCommit(sha string, info CommitInfo, parser PatchParser) *Commit {
	return &Commit{SHA: sha, Info: info, parser: parser}
}

// Size returns the batching weight of the commit: the number of file paths
// it touches. It never invokes the patch parser.
func (c *Commit) Size() int { return len(c.Info.Paths) }

// Scannables invokes the patch parser on first call and memoizes both the
// scannables and any parse error.
func (c *Commit) Scannables() ([]Scannable, error) {
	if c.parsed {
		return c.files, c.err
	}
	c.parsed = true
	if c.parser == nil {
		return nil, nil
	}
	c.files, c.err = c.parser(c)
	return c.files, c.err
}
