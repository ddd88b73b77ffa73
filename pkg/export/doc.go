// Package export renders composed components to static HTML snapshots and
// writes them to a Store: a local directory or an S3 bucket.
package export
