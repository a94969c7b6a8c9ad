// Package configdoc reads and patches a YAML job configuration document.
//
// The document is kept as a yaml.v3 node tree rather than decoded into Go
// maps, so that patching one section leaves every other key in place with
// its value, order and comments.
package configdoc
