// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Branch name validation and sanitization
//   - Interactivity detection
//   - Common data structure operations
package utils
