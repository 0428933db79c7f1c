package ports

import "context"

// ContextFetcher materializes build context files from a remote repository
// into an application's artifact directory.
type ContextFetcher interface {
	Fetch(ctx context.Context, repoURL, dir string) error
}
