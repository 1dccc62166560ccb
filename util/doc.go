// Package util holds small helpers shared across packages: size parsing,
// secret masking for logs, pointer helpers and text cleanup.
package util
