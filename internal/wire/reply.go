// SPDX-License-Identifier: BSD-3-Clause

package wire

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/openfan/openfand/internal/apierr"
)

// ParseDataReply parses the structured payload of a
// "<DATA|id:HHHH;id:HHHH;...;>"-shaped reply line into a fan id -> value
// map. Duplicate ids resolve last-value-wins; malformed entries are
// skipped with a logged warning rather than failing the whole parse.
// A reply with no "|" (e.g. bare "<DATA>") is a protocol violation and
// fails *Parse.
func ParseDataReply(line string, logger *slog.Logger) (map[int]int, error) {
	body := strings.TrimPrefix(strings.TrimSuffix(line, ">"), "<")

	barIdx := strings.IndexByte(body, '|')
	if barIdx < 0 {
		return nil, apierr.Newf(apierr.Parse, "reply %q has no structured payload", line)
	}
	payload := body[barIdx+1:]

	result := make(map[int]int)
	for _, entry := range strings.Split(payload, ";") {
		if entry == "" {
			continue
		}
		id, value, ok := parseEntry(entry)
		if !ok {
			if logger != nil {
				logger.Warn("wire: skipping malformed reply entry", "entry", entry, "line", line)
			}
			continue
		}
		result[id] = value
	}
	return result, nil
}

func parseEntry(entry string) (id, value int, ok bool) {
	colon := strings.IndexByte(entry, ':')
	if colon < 0 {
		return 0, 0, false
	}
	id64, err := strconv.Atoi(entry[:colon])
	if err != nil {
		return 0, 0, false
	}
	value64, err := strconv.ParseInt(entry[colon+1:], 16, 64)
	if err != nil {
		return 0, 0, false
	}
	return id64, int(value64), true
}

// FirstReplyLine scans lines (already split, in arrival order) for the
// first one beginning with '<', which is the reply of interest; any
// earlier lines are diagnostic chatter. Returns *Hardware if none is
// found.
func FirstReplyLine(lines []string) (string, error) {
	for _, l := range lines {
		if strings.HasPrefix(l, "<") {
			return l, nil
		}
	}
	return "", apierr.New(apierr.Hardware, "no reply line in response")
}
