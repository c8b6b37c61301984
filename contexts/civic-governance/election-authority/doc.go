// Package electionauthority implements the election authority inside the
// civic-governance context.
//
// The module owns the identity registry, the election lifecycle (pending,
// in progress, finished), the membership approval workflow for candidates and
// voters, one-vote-per-voter tallying, and the single-administrator access
// policy. Report-only reads are exposed to exactly one authorized reports
// identity. Business rules stay in domain/application layers; persistence and
// transport sit behind ports and adapters.
package electionauthority
