// Package file provides a TOML-file-backed implementation of the
// configuration store port.
package file
