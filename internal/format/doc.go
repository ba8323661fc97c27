// Package format renders release information and download progress for
// terminal output.
//
// Sizes and speeds use binary (1024) multiples with two decimals:
//
//	format.Size(100)          // "100.00 B"
//	format.Size(1536)         // "1.50 KB"
//	format.Speed(2*1024*1024) // "2.00 MB/s"
//
// ProgressLine draws the classic 50 column ASCII bar:
//
//	[#########################.........................] 50% - 1.20 MB/s
//
// TerminalBar is a download observer that redraws the current line with
// carriage returns. On a terminal it uses a coloured bubbles progress bar;
// when output is redirected it falls back to ProgressLine.
//
// WriteListing prints a release's selected assets, either as the plain text
// listing or as JSON for scripts.
package format
