package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/phrasegen/phrase"
)

// Output formats of the build command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// writeResults writes results to w in the given format: the text of one
// result per line, or the complete results as a JSON or YAML list.
func writeResults(w io.Writer, format string, results []phrase.Result) error {
	if results == nil {
		results = []phrase.Result{}
	}

	var err error

	switch format {
	case outputText:
		for _, r := range results {
			if _, err = fmt.Fprintln(w, r.Text); err != nil {
				break
			}
		}

	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		err = enc.Encode(results)

	case outputYAML:
		var data []byte

		data, err = yaml.Marshal(results)
		if err == nil {
			_, err = w.Write(data)
		}

	default:
		return ErrUnknownOutput.With(slog.String("format", format))
	}

	if err != nil {
		return ErrWriteResults.Wrap(err).With(slog.String("format", format))
	}

	return nil
}
