// Package terminal provides the color model shared by every rendering: a closed palette
// of named colors, the color-mode policy that serializes per-cell color runs into ANSI
// SGR sequences or HTML spans, and the inverse scanner that measures and decodes text
// already carrying those sequences.
//
// Features:
//   - 18-color palette with a fixed RGB table
//   - True color (24-bit) and 256-color terminal output, foreground or background
//   - HTML class spans with a configurable prefix
//   - Width measurement that skips ESC [ 3x/4x ... m sequences and degrades to
//     counting unrecognized bytes as visible
package terminal
