package toolchain

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const reasonCompilerArtifact = "compiler-artifact"

// maxMessageSize bounds a single line of cargo output.
const maxMessageSize = 16 << 20

// cargoMessage is the subset of cargo's --message-format=json records we
// read. Other fields and reasons are ignored.
type cargoMessage struct {
	Reason    string   `json:"reason"`
	PackageID string   `json:"package_id"`
	Filenames []string `json:"filenames"`
}

// scanMessages reads cargo's stdout until EOF and returns the filenames of
// the last compiler-artifact message. Lines that are not JSON messages are
// echoed to w. r is always drained, even on error.
func scanMessages(r io.Reader, w io.Writer) ([]string, error) {
	var last []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxMessageSize)
	for sc.Scan() {
		line := sc.Bytes()
		msg, ok := parseMessage(line)
		if !ok {
			if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
				_, _ = io.Copy(io.Discard, r)
				return nil, err
			}
			continue
		}
		if msg.Reason == reasonCompilerArtifact {
			last = msg.Filenames
		}
	}
	if err := sc.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return nil, fmt.Errorf("read cargo output: %w", err)
	}
	return last, nil
}

func parseMessage(line []byte) (cargoMessage, bool) {
	var msg cargoMessage
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return msg, false
	}
	if err := json.Unmarshal(trimmed, &msg); err != nil || msg.Reason == "" {
		return msg, false
	}
	return msg, true
}

// artifactFiles picks the module metadata file, or failing that the lone
// .spv file, from a compiler-artifact message. Relative names are resolved
// against dir.
func artifactFiles(filenames []string, dir string) (metadata, module string, err error) {
	var jsons, spvs []string
	for _, name := range filenames {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".json":
			jsons = append(jsons, name)
		case ".spv":
			spvs = append(spvs, name)
		}
	}
	switch {
	case len(jsons) == 1:
		return jsons[0], "", nil
	case len(jsons) > 1:
		return "", "", fmt.Errorf("%w: expected one module metadata file, got %d", ErrNoArtifact, len(jsons))
	case len(spvs) == 1:
		return "", spvs[0], nil
	case len(filenames) == 0:
		return "", "", fmt.Errorf("%w: no compiler-artifact message", ErrNoArtifact)
	default:
		return "", "", fmt.Errorf("%w: no module in [%s]", ErrNoArtifact, strings.Join(filenames, ", "))
	}
}
