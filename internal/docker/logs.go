package docker

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// readLogText converts the daemon's log stream into plain text. Log content
// is passed through untransformed apart from stripping the stream headers.
func readLogText(reader io.Reader) (string, error) {
	lines, err := parseLogStream(reader)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// parseLogStream parses the Docker log stream into individual lines
func parseLogStream(reader io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(reader)

	// Docker multiplexes stdout/stderr with 8-byte headers
	// We need to skip the header and keep the content
	for scanner.Scan() {
		line := scanner.Text()

		// Docker API returns logs with an 8-byte header for stream multiplexing
		// Format: [8 bytes header][log content]
		// We need to handle both cases (with and without header)

		// Skip the 8-byte header if present (binary data)
		// The header format is: [STREAM_TYPE][0x00][0x00][0x00][SIZE (4 bytes)]
		if len(line) > 8 {
			// Check if line starts with binary header (stream type 1 or 2)
			if line[0] == 1 || line[0] == 2 {
				line = line[8:] // Skip header
			}
		}

		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log stream at line %d: %w", len(lines), err)
	}

	return lines, nil
}
