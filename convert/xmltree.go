package convert

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// attrPrefix marks attribute keys in the parsed XML tree, keeping them from
// colliding with child elements of the same name.
const attrPrefix = "@"

// parseXML parses markup into a nested key/value tree. Child elements become
// keys; repeated siblings collapse into a slice; attributes keep their
// values under an @-prefixed key, with valueless attributes shortened to
// boolean true. An element with only character data becomes a plain string,
// while mixed content keeps its text under "#text".
func parseXML(content string) (map[string]any, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	root := map[string]any{}
	stack := []map[string]any{root}
	text := []string{""}

	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := map[string]any{}
			for _, attr := range t.Attr {
				if attr.Value == "" {
					node[attrPrefix+attr.Name.Local] = true
				} else {
					node[attrPrefix+attr.Name.Local] = attr.Value
				}
			}
			stack = append(stack, node)
			text = append(text, "")
		case xml.CharData:
			text[len(text)-1] += string(t)
		case xml.EndElement:
			node := stack[len(stack)-1]
			chardata := strings.TrimSpace(text[len(text)-1])
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]

			var value any = node
			if len(node) == 0 {
				value = chardata
			} else if chardata != "" {
				node["#text"] = chardata
			}
			insertChild(stack[len(stack)-1], t.Name.Local, value)
		}
	}

	if len(root) == 0 {
		return nil, fmt.Errorf("parsing xml: no root element")
	}
	return root, nil
}

// insertChild adds a child under name, promoting repeated siblings to a
// slice in document order.
func insertChild(parent map[string]any, name string, value any) {
	existing, ok := parent[name]
	if !ok {
		parent[name] = value
		return
	}
	if list, ok := existing.([]any); ok {
		parent[name] = append(list, value)
		return
	}
	parent[name] = []any{existing, value}
}
