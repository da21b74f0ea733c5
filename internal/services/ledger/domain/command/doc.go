// Package command defines the command envelope, the command-type registry and
// the decision values deciders return.
//
// A command is an intent from one caller account. Deciders turn it into a
// Decision: either events to append or rejections explaining why the ledger
// declined it. Nothing in this package mutates state.
package command
