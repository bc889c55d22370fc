package model

// Centralized icons for the report and TUI.
// Single-width characters keep terminal columns aligned.
const (
	IconMissing = "✗" // Candidate dropped because it does not exist
	IconOK      = "✓" // Candidate kept
	IconDir     = "▸" // Directory entry
	IconFile    = " " // Regular file (no icon to reduce noise)
	IconEnv     = "$" // Environment variable
)
