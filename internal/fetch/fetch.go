package fetch

import "context"

// Fetcher retrieves source into dest and reports the path actually written,
// which may differ from dest when the implementation rewrites names.
type Fetcher interface {
	Fetch(ctx context.Context, source, dest string) (string, error)
}

// Resolver predicts the path Fetch would produce for the same inputs without
// performing the transfer.
type Resolver interface {
	Resolve(ctx context.Context, source, dest string) (string, error)
}

// ResolvingFetcher is a Fetcher with dry-run resolution.
type ResolvingFetcher interface {
	Fetcher
	Resolver
}
