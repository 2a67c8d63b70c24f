// Package bitset provides a compact set of dense node indices.
package bitset
