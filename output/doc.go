// Package output manages the named output channels the colvars proxy
// exposes to the biasing module.
//
// A channel is a single-writer sink identified by a logical stream name
// chosen by the caller. How a name maps to storage is the host's decision,
// injected through the Opener interface; the default FileOpener creates
// plain files. The manager guarantees at most one open handle per name,
// opens lazily on first use, and treats a close of an unopened name as a
// defect in the calling code rather than a user error.
package output
