// Package loader reads entity databases from JSON files, repairing
// malformed input where possible, and validates their structure before
// graph construction.
package loader
