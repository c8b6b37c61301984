// Package electionreporting builds read-only reports over finished
// elections. It never touches election state directly; every read goes
// through ports.ElectionSource, which the composition root binds to the
// election authority's report-only endpoints.
package electionreporting
