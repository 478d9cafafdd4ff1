package util

import (
	"regexp"
	"strings"
)

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// ExtractJsonFromText pulls the JSON payload out of an LLM reply, which may
// wrap it in a markdown code fence or surround it with prose.
func ExtractJsonFromText(text string) string {
	if matches := jsonFenceRe.FindStringSubmatch(text); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}
