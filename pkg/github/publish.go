package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

const (
	branchPrefix     = "orbital-"
	branchIDSpace    = 1_000_000_000_000
	commitMessage    = "Updated global styles"
	pullRequestTitle = "Updating global styling"
	pullRequestBody  = "The design team has some changes for your global styling! 🤩"
	blobFileMode     = "100644"
	blobEntryType    = "blob"
	blobEncoding     = "base64"
	refsPerPage      = 100
	headsRefPrefix   = "refs/heads/"
)

// randomBranchName returns orbital-<n> with n in [0, 999999999999].
// Collisions with an existing branch are not checked; branch creation fails
// with a 422 in that case.
func randomBranchName() string {
	return fmt.Sprintf("%s%d", branchPrefix, rand.Int63n(branchIDSpace))
}

// publishState is threaded through the pipeline. Each step reads what earlier
// steps recorded and adds its own result.
type publishState struct {
	ref        RepoRef
	content    string
	baseBranch string
	destPath   string

	baseSHA     string
	branch      string
	blobSHA     string
	baseTreeSHA string
	treeSHA     string
	commitSHA   string
	pullRequest *github.PullRequest
}

type publishStep struct {
	step Step
	run  func(ctx context.Context, c *Client, s *publishState) error
}

// publishPipeline is the ordered list of remote mutations. Nothing is rolled
// back when a step fails.
var publishPipeline = []publishStep{
	{StepFindBaseBranch, findBaseBranch},
	{StepCreateBranch, createBranch},
	{StepCreateBlob, createBlob},
	{StepReadBaseTree, readBaseTree},
	{StepCreateTree, createTree},
	{StepCreateCommit, createCommit},
	{StepUpdateBranch, updateBranch},
	{StepOpenPullRequest, openPullRequest},
}

// Publish commits content to destPath on a new branch forked from baseBranch
// and opens a pull request back into baseBranch.
//
// The steps run strictly in order and are not transactional: when step k
// fails, steps 1..k-1 stay applied and a *PublishFailedError naming step k is
// returned. Cancelling ctx does not stop a publish that has started.
func (c *Client) Publish(ctx context.Context, ref RepoRef, content, baseBranch, destPath string) (*PublishResult, error) {
	ctx = context.WithoutCancel(ctx)

	// running out of requests halfway would leave a branch behind
	if err := c.budget.Reserve(len(publishPipeline), time.Now()); err != nil {
		var remoteErr *RemoteRequestError
		if errors.As(err, &remoteErr) {
			remoteErr.Method = http.MethodPost
			remoteErr.URL = c.endpoint(ref, "git", "refs")
		}
		c.logger.Debug("publish refused", "repo", ref.String(), "error", err)
		return nil, err
	}

	state := &publishState{
		ref:        ref,
		content:    content,
		baseBranch: baseBranch,
		destPath:   strings.TrimPrefix(destPath, "/"),
	}

	for _, st := range publishPipeline {
		c.logger.Debug("publish step", "repo", ref.String(), "step", int(st.step), "name", st.step.String())

		if err := st.run(ctx, c, state); err != nil {
			c.logger.Debug("publish step failed", "repo", ref.String(), "step", int(st.step), "error", err)
			return nil, &PublishFailedError{
				Step:   st.step,
				Name:   st.step.String(),
				Branch: state.branch,
				Cause:  err,
			}
		}
	}

	return &PublishResult{
		Branch:            state.branch,
		CommitSHA:         state.commitSHA,
		PullRequestNumber: state.pullRequest.GetNumber(),
		PullRequestURL:    state.pullRequest.GetHTMLURL(),
	}, nil
}

// findBaseBranch walks git/refs page by page for refs/heads/<baseBranch>
func findBaseBranch(ctx context.Context, c *Client, s *publishState) error {
	want := headsRefPrefix + s.baseBranch

	page := 1
	for page != 0 {
		var refs []*github.Reference
		path := fmt.Sprintf("%s?per_page=%d&page=%d", s.ref.path("git", "refs"), refsPerPage, page)
		resp, err := c.Request(ctx, http.MethodGet, path, nil, &refs)
		if err != nil {
			return fmt.Errorf("failed to list refs: %w", err)
		}

		for _, r := range refs {
			if r.GetRef() == want {
				s.baseSHA = r.GetObject().GetSHA()
				return nil
			}
		}
		page = resp.NextPage
	}

	return &BaseBranchNotFoundError{Branch: s.baseBranch}
}

func createBranch(ctx context.Context, c *Client, s *publishState) error {
	name := c.newBranchName()

	ref := &github.Reference{
		Ref:    github.String(headsRefPrefix + name),
		Object: &github.GitObject{SHA: github.String(s.baseSHA)},
	}
	if _, _, err := c.client.Git.CreateRef(ctx, s.ref.Owner, s.ref.Name, ref); err != nil {
		return wrapRemoteError(err, http.MethodPost, c.endpoint(s.ref, "git", "refs"))
	}

	s.branch = name
	return nil
}

func createBlob(ctx context.Context, c *Client, s *publishState) error {
	blob := &github.Blob{
		Content:  github.String(base64.StdEncoding.EncodeToString([]byte(s.content))),
		Encoding: github.String(blobEncoding),
	}

	created, _, err := c.client.Git.CreateBlob(ctx, s.ref.Owner, s.ref.Name, blob)
	if err != nil {
		return wrapRemoteError(err, http.MethodPost, c.endpoint(s.ref, "git", "blobs"))
	}

	s.blobSHA = created.GetSHA()
	return nil
}

func readBaseTree(ctx context.Context, c *Client, s *publishState) error {
	commit, _, err := c.client.Git.GetCommit(ctx, s.ref.Owner, s.ref.Name, s.baseSHA)
	if err != nil {
		return wrapRemoteError(err, http.MethodGet, c.endpoint(s.ref, "git", "commits", s.baseSHA))
	}

	s.baseTreeSHA = commit.GetTree().GetSHA()
	if s.baseTreeSHA == "" {
		return errors.New("base commit has no tree")
	}
	return nil
}

func createTree(ctx context.Context, c *Client, s *publishState) error {
	entries := []*github.TreeEntry{
		{
			Path: github.String(s.destPath),
			Mode: github.String(blobFileMode),
			Type: github.String(blobEntryType),
			SHA:  github.String(s.blobSHA),
		},
	}

	tree, _, err := c.client.Git.CreateTree(ctx, s.ref.Owner, s.ref.Name, s.baseTreeSHA, entries)
	if err != nil {
		return wrapRemoteError(err, http.MethodPost, c.endpoint(s.ref, "git", "trees"))
	}

	s.treeSHA = tree.GetSHA()
	return nil
}

func createCommit(ctx context.Context, c *Client, s *publishState) error {
	commit := &github.Commit{
		Message: github.String(commitMessage),
		Tree:    &github.Tree{SHA: github.String(s.treeSHA)},
		Parents: []*github.Commit{{SHA: github.String(s.baseSHA)}},
	}

	created, _, err := c.client.Git.CreateCommit(ctx, s.ref.Owner, s.ref.Name, commit, nil)
	if err != nil {
		return wrapRemoteError(err, http.MethodPost, c.endpoint(s.ref, "git", "commits"))
	}

	s.commitSHA = created.GetSHA()
	return nil
}

func updateBranch(ctx context.Context, c *Client, s *publishState) error {
	ref := &github.Reference{
		Ref:    github.String(headsRefPrefix + s.branch),
		Object: &github.GitObject{SHA: github.String(s.commitSHA)},
	}

	if _, _, err := c.client.Git.UpdateRef(ctx, s.ref.Owner, s.ref.Name, ref, false); err != nil {
		return wrapRemoteError(err, http.MethodPatch, c.endpoint(s.ref, "git", "refs", "heads", s.branch))
	}
	return nil
}

func openPullRequest(ctx context.Context, c *Client, s *publishState) error {
	pull := &github.NewPullRequest{
		Title: github.String(pullRequestTitle),
		Head:  github.String(s.branch),
		Base:  github.String(s.baseBranch),
		Body:  github.String(pullRequestBody),
	}

	pr, _, err := c.client.PullRequests.Create(ctx, s.ref.Owner, s.ref.Name, pull)
	if err != nil {
		return wrapRemoteError(err, http.MethodPost, c.endpoint(s.ref, "pulls"))
	}

	s.pullRequest = pr
	return nil
}
