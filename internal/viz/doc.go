// Package viz draws gravity frames for terminals.
//
// The package renders onto a braille pixel canvas:
//
//   - [Canvas]: 2x4-dot braille canvas with per-cell color
//   - [Scene]: maps a frame through the camera onto a canvas
//   - [Theme] and [Styles]: lipgloss color schemes for panels and text
//
// Distances are measured in dots. A braille dot is roughly square on common
// terminal fonts, so circles stay round without aspect correction.
package viz
