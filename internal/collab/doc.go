// Package collab implements the multi-agent collaboration orchestrator.
//
// A collaboration run takes one user prompt and an ordered list of agents
// (provider+model pairs) and drives them under one of three strategies:
//
//   - debate: every agent answers each round, seeing a digest of the two
//     most recent prior responses from round 2 onward
//   - pipeline: a strictly sequential refinement chain, each step building
//     on the previous step's full output
//   - consensus: every agent answers the same prompt independently; a
//     lexical confidence score decides whether one answer is promoted or
//     all are presented side by side
//
// Transport failures never propagate as errors past the Caller boundary:
// they are converted to data (a failed CallEvent, an absent Record) so a
// run always produces a best-effort report. Only validation failures in
// Orchestrator.Run return an error.
package collab
