// Package runcontrol manages the .ltrc.json file kept at the root of every
// notebook directory. The file records the host, project and author identity
// used in generated notebooks and the README, plus the set of active topics.
//
// The record is loaded once per invocation and rewritten in full after every
// mutating command. There is no locking; concurrent writers race and the last
// one wins.
package runcontrol
