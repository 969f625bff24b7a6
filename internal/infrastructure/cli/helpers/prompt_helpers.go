package helpers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptForChoice asks until the answer is one of choices; empty input keeps
// defaultValue.
func PromptForChoice(out io.Writer, reader *bufio.Reader, promptText string, choices []string, defaultValue string) string {
	for {
		fmt.Fprintf(out, "%s (%s) [%s]: ", promptText, strings.Join(choices, "/"), defaultValue)
		line, err := reader.ReadString('\n')
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			return defaultValue
		}
		for _, c := range choices {
			if line == c {
				return c
			}
		}
		if err != nil {
			return defaultValue
		}
		fmt.Fprintf(out, "Please answer one of: %s\n", strings.Join(choices, ", "))
	}
}

// PromptForYesNo prompts the user for a yes/no question
func PromptForYesNo(out io.Writer, reader *bufio.Reader, promptText string, defaultValue bool) bool {
	label := "y/N"
	if defaultValue {
		label = "Y/n"
	}
	fmt.Fprintf(out, "%s [%s]: ", promptText, label)

	line, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return defaultValue
	case "y", "yes":
		return true
	default:
		return false
	}
}

// PromptForString prompts for free text; empty input keeps defaultValue.
// hint replaces the displayed default, so secrets can be masked.
func PromptForString(out io.Writer, reader *bufio.Reader, promptText, defaultValue, hint string) string {
	fmt.Fprint(out, promptText)
	if hint != "" {
		fmt.Fprintf(out, " [%s]", hint)
	}
	fmt.Fprint(out, ": ")
	line, _ := reader.ReadString('\n')
	if line = strings.TrimSpace(line); line == "" {
		return defaultValue
	}
	return line
}
