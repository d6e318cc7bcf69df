// Package sanitizer normalizes free-form request input before it reaches
// validation or storage lookups.
package sanitizer
