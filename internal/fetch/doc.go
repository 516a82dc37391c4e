// Package fetch retrieves remote media into a content-addressed on-disk cache.
//
// A Fetcher turns a source reference into a local file. HTTPFetcher streams
// plain object URLs (S3 intros and outros); VideoFetcher drives yt-dlp for
// YouTube sources and also implements Resolver so callers can predict the
// final filename without transferring anything. Cache fronts either kind and
// guarantees at most one transfer per key; whether it consults a Resolver is
// fixed when the Cache is constructed.
package fetch
