// Package cache provides a small LRU cache for per-size image variants.
//
// The cache is not safe for concurrent use. It is owned by a single icon
// cache, which is only touched from the UI thread.
package cache
