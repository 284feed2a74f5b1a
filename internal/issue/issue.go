// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/urlnorm/urlnorm/pkg/component"
	"github.com/urlnorm/urlnorm/pkg/punycode"
	"github.com/urlnorm/urlnorm/pkg/urlnorm"
)

type Id int

const (
	ParseFailedId Id = iota + 1
	InvalidSchemeId
	InvalidHostId
	InvalidPortId
	IPHostLockedId
	PunycodeFailedId
	ConfigLoadFailedId
	BatchInputFailedId
	WatchFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	slug     string      // name accepted by `urlnorm explain`
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Slug() string {
	return i.slug
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Title returns the text of the first markdown heading.
func (i *Issue) Title() string {
	for line := range strings.Lines(string(i.mdMsg)) {
		if title, ok := strings.CutPrefix(strings.TrimSpace(line), "# "); ok {
			return title
		}
	}
	return ""
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the page with the glamour style at stylePath ("dark",
// "light", "notty" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	parseFailedIssue = &Issue{
		id:   ParseFailedId,
		slug: "parse-failed",
		mdMsg: `
# The input could not be split into URL components

urlnorm accepts absolute URLs, scheme-relative URLs (` + "`//host/path`" + `) and
bare authorities such as ` + "`example.com:8080/path`" + `. An input is rejected
when no interpretation yields a host.

## Common causes
- A path with no host: ` + "`/over/there`" + `
- A port without a host: ` + "`:8080/path`" + `
- Unbalanced IPv6 brackets: ` + "`http://[::1/`" + `
- Three leading slashes: ` + "`///example.com`" + `

## Things you can try
~~~
$ urlnorm parse 'http://example.com/over/there'
$ urlnorm parse '//example.com:8042/over/there'
~~~`,
		extLinks: []HttpLink{"https://www.rfc-editor.org/rfc/rfc3986#section-3"},
	}

	invalidSchemeIssue = &Issue{
		id:   InvalidSchemeId,
		slug: "invalid-scheme",
		mdMsg: `
# Invalid scheme

A scheme starts with a letter followed by at least one letter, digit, ` + "`+`" + `,
` + "`-`" + ` or ` + "`.`" + `. It is lowercased before validation, so ` + "`HTTP`" + ` is fine
but ` + "`h`" + ` and ` + "`1http`" + ` are not.`,
		extLinks: []HttpLink{"https://www.rfc-editor.org/rfc/rfc3986#section-3.1"},
	}

	invalidHostIssue = &Issue{
		id:   InvalidHostId,
		slug: "invalid-host",
		mdMsg: `
# Invalid host

Host names are checked label by label after conversion to ASCII (punycode).

## Rules
- each label is 1 to 63 characters of ` + "`a-z`" + `, ` + "`0-9`" + ` and ` + "`-`" + `, and may not start or end with ` + "`-`" + `
- at most 126 labels
- the ASCII form, dots included, is shorter than 255 characters
- IPv6 addresses are written in brackets and may not carry a zone

## Things you can try
~~~
$ urlnorm host 'bébé.be'
$ urlnorm punycode encode 'президент.рф'
~~~`,
		extLinks: []HttpLink{
			"https://www.rfc-editor.org/rfc/rfc1035#section-2.3.4",
			"https://www.rfc-editor.org/rfc/rfc3492",
		},
	}

	invalidPortIssue = &Issue{
		id:   InvalidPortId,
		slug: "invalid-port",
		mdMsg: `
# Invalid port

A port is a decimal number between 1 and 65535. Leave it out to use the
scheme's default.`,
	}

	ipHostLockedIssue = &Issue{
		id:   IPHostLockedId,
		slug: "ip-host-locked",
		mdMsg: `
# Labels cannot be edited on an IP host

When a host holds an IPv4 or IPv6 address, label operations (insert, remove,
set by index) are refused. Replace the whole host instead:

~~~
$ urlnorm host --set example.com 'http://127.0.0.1/'
~~~`,
	}

	punycodeFailedIssue = &Issue{
		id:   PunycodeFailedId,
		slug: "punycode",
		mdMsg: `
# Punycode label could not be decoded

Labels starting with ` + "`xn--`" + ` must be valid RFC 3492 encodings. Decoding
fails on characters outside ` + "`a-z0-9`" + ` after the last ` + "`-`" + `, on truncated
input and on values that overflow.`,
		extLinks: []HttpLink{"https://www.rfc-editor.org/rfc/rfc3492#section-6.2"},
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		slug: "config-invalid",
		mdMsg: `
# Failed to load configuration

The configuration file is CUE and is validated against a closed schema.

## Keys
~~~cue
output: {
	format:    "text" | "json" | "toml" | "cue"
	host_form: "unicode" | "ascii"
}
normalize: purell: "none" | "safe" | "usually_safe" | "unsafe"
ui: {
	color_scheme: "auto" | "dark" | "light"
	verbose:      bool
}
watch: {
	debounce: "500ms"
	patterns: [...string]
}
~~~

Environment variables such as ` + "`URLNORM_OUTPUT_FORMAT`" + ` override the file.

## Things you can try
~~~
$ urlnorm config path
$ urlnorm config init
$ urlnorm config dump
~~~`,
	}

	batchInputFailedIssue = &Issue{
		id:   BatchInputFailedId,
		slug: "batch-input",
		mdMsg: `
# URL list could not be read

` + "`normalize --file`" + ` reads either plain text (one URL per line, ` + "`#`" + `
comments and blank lines ignored) or a ` + "`.cue`" + ` manifest:

~~~cue
urls: [
	"HTTP://Example.COM/a b",
	"//example.org:8042/over/there?name=ferret",
]
~~~`,
	}

	watchFailedIssue = &Issue{
		id:   WatchFailedId,
		slug: "watch-failed",
		mdMsg: `
# The file watcher stopped

The operating system refused to watch more files. On Linux raise the inotify
limit:

~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~`,
	}

	issues = map[Id]*Issue{
		parseFailedIssue.Id():      parseFailedIssue,
		invalidSchemeIssue.Id():    invalidSchemeIssue,
		invalidHostIssue.Id():      invalidHostIssue,
		invalidPortIssue.Id():      invalidPortIssue,
		ipHostLockedIssue.Id():     ipHostLockedIssue,
		punycodeFailedIssue.Id():   punycodeFailedIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		batchInputFailedIssue.Id(): batchInputFailedIssue,
		watchFailedIssue.Id():      watchFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	out := slices.Collect(maps.Values(issues))
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}

// Lookup finds an issue by slug.
func Lookup(slug string) (*Issue, bool) {
	for _, is := range issues {
		if is.slug == slug {
			return is, true
		}
	}
	return nil, false
}

// Classify maps a library error to the catalog page that explains it.
// It returns 0 when no page applies.
func Classify(err error) Id {
	var ae *ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}

	switch {
	case errors.Is(err, urlnorm.ErrParse):
		return ParseFailedId
	case errors.Is(err, punycode.ErrInvalidInput), errors.Is(err, punycode.ErrOverflow):
		return PunycodeFailedId
	case errors.Is(err, component.ErrInvariantViolation):
		return IPHostLockedId
	case errors.Is(err, component.ErrInvalidScheme):
		return InvalidSchemeId
	case errors.Is(err, component.ErrInvalidPort):
		return InvalidPortId
	case errors.Is(err, component.ErrInvalidHostLabel),
		errors.Is(err, component.ErrInvalidLabelLength),
		errors.Is(err, component.ErrInvalidLabelCount),
		errors.Is(err, component.ErrInvalidHostLength):
		return InvalidHostId
	}
	return 0
}
