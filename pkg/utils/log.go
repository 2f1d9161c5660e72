package utils

import (
	"bufio"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LogLines logs each line of text as its own entry at level.
func LogLines(text string, level log.Level) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		log.StandardLogger().Log(level, scanner.Text())
	}
}
