// Package content holds the brand's static copy and nutrition data.
//
// Everything here is fixed at build time. The layout packages read it as
// is, which keeps every panel deterministic: the same panel id always
// renders the same pixels.
package content
