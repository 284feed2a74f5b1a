// SPDX-License-Identifier: MPL-2.0

package batch

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/purell"

	"github.com/urlnorm/urlnorm/internal/config"
	"github.com/urlnorm/urlnorm/internal/issue"
	"github.com/urlnorm/urlnorm/pkg/cueutil"
	"github.com/urlnorm/urlnorm/pkg/urlnorm"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

// ErrEmptyList is returned when a list holds no URLs.
var ErrEmptyList = errors.New("batch: no URLs in list")

type (
	// Entry is one URL of a list with its position: the line number for
	// text lists, the 1-based index for manifests.
	Entry struct {
		Line  int    `json:"line"`
		Input string `json:"input"`
	}

	// List is a parsed URL list.
	List struct {
		Source   string
		Entries  []Entry
		HostForm config.HostForm
	}

	// Manifest is the decoded form of a CUE URL list.
	Manifest struct {
		URLs     []string `json:"urls"`
		HostForm string   `json:"host_form,omitempty"`
	}

	// Result is the outcome of normalizing one Entry. Output is empty when
	// Err is set.
	Result struct {
		Entry
		URL    urlnorm.URL `json:"-"`
		Output string      `json:"output,omitempty"`
		Err    error       `json:"-"`
	}

	// Runner normalizes entries. The zero value renders Unicode hosts
	// without a purell pass.
	Runner struct {
		HostForm config.HostForm
		Purell   config.PurellMode
		Logger   *slog.Logger
	}
)

// ReadFile reads a list, choosing the format by extension.
func ReadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read URL list").
			WithResource(path).
			WithSuggestion("Check that the file exists and is readable").
			WithIssue(issue.BatchInputFailedId).
			Wrap(err).
			BuildError()
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses r as a CUE manifest when name ends in ".cue" and as a text
// list otherwise.
func Read(r io.Reader, name string) (*List, error) {
	var (
		list *List
		err  error
	)
	if filepath.Ext(name) == ".cue" {
		list, err = readManifest(r, name)
	} else {
		list, err = readText(r, name)
	}
	if err == nil && len(list.Entries) == 0 {
		err = ErrEmptyList
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read URL list").
			WithResource(name).
			WithIssue(issue.BatchInputFailedId).
			Wrap(err).
			BuildError()
	}
	return list, nil
}

// readText returns one entry per non-blank line; lines starting with '#'
// are comments.
func readText(r io.Reader, name string) (*List, error) {
	list := &List{Source: name}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		list.Entries = append(list.Entries, Entry{Line: line, Input: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}
	return list, nil
}

func readManifest(r io.Reader, name string) (*List, error) {
	data, err := io.ReadAll(io.LimitReader(r, cueutil.DefaultMaxFileSize+1))
	if err != nil {
		return nil, err
	}
	res, err := cueutil.ParseAndDecode[Manifest](manifestSchema, data, "#Batch", cueutil.WithFilename(name))
	if err != nil {
		return nil, err
	}
	list := &List{Source: name, HostForm: config.HostForm(res.Value.HostForm)}
	for i, u := range res.Value.URLs {
		list.Entries = append(list.Entries, Entry{Line: i + 1, Input: u})
	}
	return list, nil
}

// PurellFlags maps a purell mode to its flag set. ok is false for
// PurellNone and unknown modes.
func PurellFlags(mode config.PurellMode) (flags purell.NormalizationFlags, ok bool) {
	switch mode {
	case config.PurellSafe:
		return purell.FlagsSafe, true
	case config.PurellUsuallySafe:
		return purell.FlagsUsuallySafeGreedy, true
	case config.PurellUnsafe:
		return purell.FlagsUnsafeGreedy, true
	default:
		return 0, false
	}
}

// Normalize runs one input through the pipeline and the configured
// rendering and purell pass.
func (r Runner) Normalize(input string) (urlnorm.URL, string, error) {
	u, err := urlnorm.Parse(input)
	if err != nil {
		return urlnorm.URL{}, "", err
	}
	out := u.String()
	if r.HostForm == config.HostFormASCII {
		out = u.ToASCII()
	}
	if flags, ok := PurellFlags(r.Purell); ok {
		out, err = purell.NormalizeURLString(out, flags)
		if err != nil {
			return u, "", fmt.Errorf("purell %s: %w", r.Purell, err)
		}
	}
	return u, out, nil
}

// Run normalizes every entry of list in order. Failures are recorded on the
// Result and logged; Run stops early only when ctx is done.
func (r Runner) Run(ctx context.Context, list *List) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if list.HostForm != "" {
		r.HostForm = list.HostForm
	}

	results := make([]Result, 0, len(list.Entries))
	for _, e := range list.Entries {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		u, out, err := r.Normalize(e.Input)
		if err != nil {
			logger.Warn("cannot normalize URL", "source", list.Source, "line", e.Line, "input", e.Input, "error", err)
		} else {
			logger.Debug("normalized", "line", e.Line, "input", e.Input, "output", out)
		}
		results = append(results, Result{Entry: e, URL: u, Output: out, Err: err})
	}
	return results, nil
}

// Failed counts results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
