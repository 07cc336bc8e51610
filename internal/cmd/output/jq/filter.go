package jq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	cmdcommon "github.com/amora/amoractl/internal/cmd/common"
	"github.com/itchyny/gojq"
	"github.com/mattn/go-isatty"
)

var compiled sync.Map // expression -> *gojq.Code

// Apply runs the jq filter in settings over raw.
//
// When the result was written to out directly (raw or colorized output)
// handled is true. Otherwise the filtered value is returned for the regular
// json or yaml printer.
func Apply(raw any, outType cmdcommon.OutputFormat, settings Settings, out io.Writer) (any, bool, error) {
	if !settings.HasFilter() {
		return raw, false, nil
	}
	if err := ValidateOutputFormat(outType, settings); err != nil {
		return nil, false, err
	}

	body, err := json.Marshal(raw)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode output for jq: %w", err)
	}
	results, err := Evaluate(body, settings.Filter)
	if err != nil {
		return nil, false, err
	}

	if settings.RawOutput {
		return nil, true, WriteRaw(results, out)
	}

	collapsed := collapse(results)
	if outType == cmdcommon.JSON && ShouldUseColor(settings.ColorMode, out) {
		pretty, err := json.MarshalIndent(collapsed, "", "  ")
		if err != nil {
			return nil, false, err
		}
		_, err = fmt.Fprintln(out, strings.TrimRight(Colorize(string(pretty), settings.Theme), "\n"))
		return nil, true, err
	}
	return collapsed, false, nil
}

// ApplyFilter evaluates filter over a JSON body and re-encodes the result.
// Several results are encoded as one array.
func ApplyFilter(body []byte, filter string) ([]byte, error) {
	results, err := Evaluate(body, filter)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(collapse(results))
	if err != nil {
		return nil, fmt.Errorf("failed to encode jq result: %w", err)
	}
	return encoded, nil
}

// Evaluate runs filter over a JSON body and returns every emitted value.
func Evaluate(body []byte, filter string) ([]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("response body is empty, cannot apply jq filter")
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	code, err := compile(filter)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := code.Run(payload)
	for {
		v, ok := iter.Next()
		if !ok {
			return results, nil
		}
		if err, isErr := v.(error); isErr {
			var halt *gojq.HaltError
			if errors.As(err, &halt) && halt.Value() == nil {
				return results, nil
			}
			return nil, fmt.Errorf("jq filter failed: %w", err)
		}
		results = append(results, v)
	}
}

// WriteRaw prints one result per line, strings without quotes.
func WriteRaw(results []any, out io.Writer) error {
	for _, r := range results {
		line, ok := r.(string)
		if !ok {
			encoded, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("failed to encode jq result: %w", err)
			}
			line = string(encoded)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func compile(filter string) (*gojq.Code, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = "."
	}
	if code, ok := compiled.Load(filter); ok {
		return code.(*gojq.Code), nil
	}

	query, err := gojq.Parse(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	compiled.Store(filter, code)
	return code, nil
}

func collapse(results []any) any {
	switch len(results) {
	case 0:
		return nil
	case 1:
		return results[0]
	default:
		return results
	}
}

var isTerminalFd = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShouldUseColor resolves auto against NO_COLOR and whether out is a terminal.
func ShouldUseColor(mode cmdcommon.ColorMode, out io.Writer) bool {
	switch mode {
	case cmdcommon.ColorModeAlways:
		return true
	case cmdcommon.ColorModeNever:
		return false
	}
	if _, disabled := os.LookupEnv("NO_COLOR"); disabled {
		return false
	}
	f, ok := out.(interface{ Fd() uintptr })
	return ok && isTerminalFd(f.Fd())
}

// Colorize highlights a JSON document with the named chroma style. The input
// is returned unchanged when highlighting is not possible.
func Colorize(doc, theme string) string {
	lexer := lexers.Get("json")
	formatter := formatters.Get("terminal256")
	if lexer == nil || formatter == nil {
		return doc
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	tokens, err := lexer.Tokenise(nil, doc)
	if err != nil {
		return doc
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, tokens); err != nil {
		return doc
	}
	return buf.String()
}
