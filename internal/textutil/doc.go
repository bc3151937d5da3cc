// Package textutil provides small text helpers for building filesystem-safe
// output names from video titles and language codes.
package textutil
