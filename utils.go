/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"strings"
)

// runMode selects which front ends are started
type runMode string

const (
	modeAll runMode = "all"
	modeBot runMode = "bot"
	modeWeb runMode = "web"
)

func (m runMode) runsBot() bool { return m == modeAll || m == modeBot }
func (m runMode) runsWeb() bool { return m == modeAll || m == modeWeb }

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// parseMode parses the -mode flag
// Preconditions: Receives all, bot or web (case insensitive)
// Postconditions: Returns the mode or an error naming the valid modes
func parseMode(str string) (runMode, error) {
	switch mode := runMode(strings.ToLower(strings.TrimSpace(str))); mode {
	case modeAll, modeBot, modeWeb:
		return mode, nil
	}
	return "", fmt.Errorf("invalid mode %q, expected all, bot or web", str)
}
