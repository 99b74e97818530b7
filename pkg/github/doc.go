// Package github talks to the GitHub REST API on behalf of orbital.
//
// It resolves repository URLs, reads the orbital.conf.json file that lives at
// the root of a target repository, checks that a token can push to that
// repository, and publishes a generated stylesheet as a pull request.
//
// The package includes:
// - Client, a thin wrapper over go-github with bearer token authentication
// - Publish, the eight step branch/blob/tree/commit/ref/pull request pipeline
// - Validator, a read-only dry run of everything Publish depends on
// - Typed errors for every failure a caller is expected to handle
package github
