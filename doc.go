// Package propmigrate reads the retired fixed slot property store of the graph
// kernel and hands its records to a store upgrade.
//
// A Reader walks the store file one 25 byte slot at a time and yields the in use
// property records in id order. Migrate runs a full pass under a directory lock
// and writes the records into a sink, all or nothing.
package propmigrate
