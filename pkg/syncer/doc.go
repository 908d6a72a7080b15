// Package syncer drives the bulk download of standard sets from the
// catalog API. Jurisdictions are processed one at a time and their sets
// are fetched strictly sequentially with a fixed pacing delay between
// requests. Every persisted set is recorded in the path index as soon as
// it lands on disk, so an interrupted run resumes where it left off and
// a finished run re-executed against the same output directory fetches
// nothing.
package syncer
