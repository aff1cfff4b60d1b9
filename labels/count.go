package labels

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/leonelquinteros/gotext"
	"gopkg.in/yaml.v3"

	"github.com/labeleer/labeleer-cli/format"
)

// Count reports how many entries data holds when read as format f.
// It is used for summaries only; formats other than JSON are not
// otherwise interpreted.
func Count(f format.Format, data []byte) (int, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return 0, nil
	}

	switch f {
	case format.JSON:
		lf, err := Parse(data)
		if err != nil {
			return 0, err
		}
		return len(lf), nil
	case format.YAML:
		return countYAML(data)
	case format.PO:
		return countPO(data), nil
	case format.Android:
		return countXML(data, "string", "plurals", "string-array")
	case format.XLIFF:
		return countXML(data, "trans-unit", "unit")
	case format.TS:
		return countXML(data, "message")
	case format.Strings:
		return len(stringsPairRe.FindAll(data, -1)), nil
	case format.XCStrings:
		return countXCStrings(data)
	}
	return 0, fmt.Errorf("counting entries: unsupported format %q", f)
}

// countYAML counts string leaves. Nested maps are label groups, as in
// Rails-style locale files.
func countYAML(data []byte) (int, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parsing YAML: %w", err)
	}
	return countLeaves(&doc), nil
}

func countLeaves(n *yaml.Node) int {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		total := 0
		for _, c := range n.Content {
			total += countLeaves(c)
		}
		return total
	case yaml.MappingNode:
		total := 0
		// Content alternates key, value.
		for i := 1; i < len(n.Content); i += 2 {
			total += countLeaves(n.Content[i])
		}
		return total
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return 0
		}
		return 1
	case yaml.AliasNode:
		if n.Alias != nil {
			return countLeaves(n.Alias)
		}
	}
	return 0
}

func countPO(data []byte) int {
	po := gotext.NewPo()
	po.Parse(data)

	n := 0
	for id := range po.GetDomain().GetTranslations() {
		if id != "" {
			n++
		}
	}
	return n
}

// countXML counts start elements with one of the given local names.
func countXML(data []byte, names ...string) (int, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	n := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("parsing XML: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok && want[se.Name.Local] {
			n++
			// string-array and plurals hold <item> children; skip them.
			if err := dec.Skip(); err != nil {
				return n, fmt.Errorf("parsing XML: %w", err)
			}
		}
	}
}

// stringsPairRe matches `"key" = "value";` in Apple .strings files.
var stringsPairRe = regexp.MustCompile(`(?m)^\s*"(?:[^"\\]|\\.)*"\s*=\s*"(?:[^"\\]|\\.)*"\s*;`)

func countXCStrings(data []byte) (int, error) {
	var catalog struct {
		Strings map[string]json.RawMessage `json:"strings"`
	}
	if err := json.Unmarshal(data, &catalog); err != nil {
		return 0, fmt.Errorf("parsing string catalog: %w", err)
	}
	return len(catalog.Strings), nil
}
