// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentinels bounding the injected block. Must stay byte-identical so that a
// previously patched file can be stripped.
const (
	MarkerStart = "<!-- !! SmoothType CSS Start !! -->"
	MarkerEnd   = "<!-- !! SmoothType CSS End !! -->"

	closingRootTag = "</html>"
	metaTagOpen    = "<meta"
	cspAttribute   = `http-equiv="Content-Security-Policy"`
)

// Settings is the read-only configuration supplied at patch time.
type Settings struct {
	// Duration of the cursor transition in milliseconds. Zero means not configured.
	Duration int `json:"duration"`
	// Policy strips the restrictive Content-Security-Policy meta tag when set.
	Policy bool `json:"policy"`
}

// Configured reports whether a usable duration is present.
func (s Settings) Configured() bool {
	return s.Duration > 0
}

// InjectedStyle returns the style payload placed between the markers.
func InjectedStyle(duration int) string {
	return "<style> .cursor { transition: all " + strconv.Itoa(duration) + "ms; } </style>"
}

// InjectedBlock returns the full marked block for duration.
func InjectedBlock(duration int) string {
	return MarkerStart + InjectedStyle(duration) + MarkerEnd
}

// ComputeInjectedContent strips any existing block, optionally removes the
// CSP meta tag and inserts a fresh block right before the closing root tag.
// Applying it twice yields the same content as applying it once.
func ComputeInjectedContent(original string, settings Settings) (string, error) {
	if !settings.Configured() {
		return "", ErrNotConfigured
	}

	content, err := StripBlock(original)
	if err != nil {
		return "", err
	}

	if settings.Policy {
		content = StripPolicy(content)
	}

	idx := strings.Index(content, closingRootTag)
	if idx < 0 {
		return "", ErrMissingRootTag
	}

	return content[:idx] + InjectedBlock(settings.Duration) + content[idx:], nil
}

// StripBlock removes the marked block, if any. Content without markers is
// returned unchanged. An unpaired marker or a second block is rejected.
func StripBlock(content string) (string, error) {
	start, end, found, err := locateBlock(content)
	if err != nil || !found {
		return content, err
	}

	return content[:start] + content[end:], nil
}

// HasBlock reports whether content carries exactly one well-formed block.
func HasBlock(content string) (bool, error) {
	_, _, found, err := locateBlock(content)

	return found, err
}

// BlockDuration extracts the duration from an injected block, or 0 when absent.
func BlockDuration(content string) int {
	start, end, found, err := locateBlock(content)
	if err != nil || !found {
		return 0
	}

	block := content[start:end]

	_, rest, ok := strings.Cut(block, "transition: all ")
	if !ok {
		return 0
	}

	value, _, ok := strings.Cut(rest, "ms;")
	if !ok {
		return 0
	}

	duration, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}

	return duration
}

// locateBlock returns the [start, end) byte range of the single marked block.
func locateBlock(content string) (int, int, bool, error) {
	start := strings.Index(content, MarkerStart)
	endMarker := strings.Index(content, MarkerEnd)

	switch {
	case start < 0 && endMarker < 0:
		return 0, 0, false, nil
	case start < 0:
		return 0, 0, false, fmt.Errorf("%w: end marker without start marker", ErrMalformedMarkers)
	}

	if endMarker >= 0 && endMarker < start {
		return 0, 0, false, fmt.Errorf("%w: end marker precedes start marker", ErrMalformedMarkers)
	}

	rel := strings.Index(content[start+len(MarkerStart):], MarkerEnd)
	if rel < 0 {
		return 0, 0, false, fmt.Errorf("%w: start marker without end marker", ErrMalformedMarkers)
	}

	end := start + len(MarkerStart) + rel + len(MarkerEnd)

	rest := content[end:]
	if strings.Contains(rest, MarkerStart) || strings.Contains(rest, MarkerEnd) {
		return 0, 0, false, fmt.Errorf("%w: more than one marked block", ErrMalformedMarkers)
	}

	return start, end, true, nil
}

// StripPolicy removes the first single-line Content-Security-Policy meta tag,
// from the "<meta" that opens it to the first '>' after the attribute.
func StripPolicy(content string) string {
	offset := 0

	for _, line := range strings.SplitAfter(content, "\n") {
		body := strings.TrimRight(line, "\r\n")

		if attr := strings.Index(body, cspAttribute); attr >= 0 {
			open := strings.LastIndex(body[:attr], metaTagOpen)
			closing := strings.Index(body[attr+len(cspAttribute):], ">")

			if open >= 0 && closing >= 0 {
				end := attr + len(cspAttribute) + closing

				return content[:offset+open] + content[offset+end+1:]
			}
		}

		offset += len(line)
	}

	return content
}
