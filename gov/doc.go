/*
Package gov implements the proposal lifecycle engine: the state machine
that takes transfer requests through creation, signer voting, timelock
and execution.

Valid transitions:

	Pending  -> Approved | Rejected | Expired
	Approved -> Executed | Rejected | Expired

Executed, Rejected and Expired are terminal. Every transition is
implemented as a read, re-validate, compare-and-swap cycle against the
proposal store and is retried on version conflicts up to a configured
bound. Replaying an identical vote is a no-op, not an error, so network
level retries are harmless.
*/
package gov
