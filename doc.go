/*
Package vault defines the core types of the VaultDAO treasury
governance engine: signer identities, token references, the proposal
model and the signer registry snapshot that every proposal captures at
creation time.

The lifecycle state machine that operates on these types lives in the
gov package. Persistence implementations live in the store package.
*/
package vault
