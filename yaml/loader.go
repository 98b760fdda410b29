// Package yaml implements story document loading using gopkg.in/yaml.v3.
package yaml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/fable"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ fable.Loader = (*Loader)(nil)

// DefaultWindow is used for documents without a window section.
var DefaultWindow = fable.Window{Title: "fable", Width: 800, Height: 600}

// Loader reads story documents from YAML files.
//
// A document has an optional window section and a story section:
//
//	window:
//	  title: My story
//	  width: 800
//	  height: 600
//	  fullscreen: false
//	story:
//	  Start:
//	    milliseconds: 2000
//	    node: {text: Once upon a time, size: 40}
//	    then: chapter1.yaml
//
// Story nodes are recognized by shape: a mapping of label to story is a
// choice list, a string names another file holding a single story node,
// {milliseconds, node, then} is a fade and {text, size} is a title.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the document at path and every file it references.
func (l *Loader) Load(path string) (*fable.Document, error) {
	root, err := readNode(path)
	if err != nil {
		return nil, err
	}

	d := &decoder{}
	d.enter(path)
	defer d.leave()

	fields, err := d.fields(root, "window", "story")
	if err != nil {
		return nil, err
	}

	doc := &fable.Document{Window: DefaultWindow}
	if n, ok := fields["window"]; ok {
		if doc.Window, err = d.window(n); err != nil {
			return nil, err
		}
	}
	n, ok := fields["story"]
	if !ok {
		return nil, d.errorf(root, "missing story")
	}
	if doc.Story, err = d.story(n); err != nil {
		return nil, err
	}
	doc.Files = d.files
	return doc, nil
}

// readNode parses a file and returns its top-level node.
func readNode(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &fable.DocumentError{Path: path, Msg: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &fable.DocumentError{Path: path, Msg: "empty document"}
	}
	return doc.Content[0], nil
}

// decoder converts YAML nodes to story trees, tracking which file is being
// read so that errors and file references resolve against it.
type decoder struct {
	stack []string // Absolute paths of the files being decoded, innermost last
	files []string // Every file read, in order
}

func (d *decoder) enter(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	d.stack = append(d.stack, abs)
	d.files = append(d.files, abs)
}

func (d *decoder) leave() {
	d.stack = d.stack[:len(d.stack)-1]
}

func (d *decoder) path() string {
	return d.stack[len(d.stack)-1]
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) error {
	return &fable.DocumentError{Path: d.path(), Line: n.Line, Msg: fmt.Sprintf(format, args...)}
}

// fields returns the values of mapping n by key, rejecting keys not in allowed.
func (d *decoder) fields(n *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "expected a mapping")
	}
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !slices.Contains(allowed, k.Value) {
			return nil, d.errorf(k, "unknown field %q", k.Value)
		}
		if _, dup := out[k.Value]; dup {
			return nil, d.errorf(k, "field %q defined twice", k.Value)
		}
		out[k.Value] = v
	}
	return out, nil
}

func (d *decoder) window(n *yaml.Node) (fable.Window, error) {
	w := DefaultWindow
	fields, err := d.fields(n, "title", "width", "height", "fullscreen")
	if err != nil {
		return w, err
	}
	decode := func(key string, target any) error {
		v, ok := fields[key]
		if !ok {
			return nil
		}
		if err := v.Decode(target); err != nil {
			return d.errorf(v, "window %s: %v", key, err)
		}
		return nil
	}
	for key, target := range map[string]any{
		"title":      &w.Title,
		"width":      &w.Width,
		"height":     &w.Height,
		"fullscreen": &w.Fullscreen,
	} {
		if err := decode(key, target); err != nil {
			return w, err
		}
	}
	return w, nil
}

// shape is one way a story node can be written.
type shape struct {
	name  string
	match func(n *yaml.Node) error
}

// story decodes a single story node. It must match exactly one shape.
func (d *decoder) story(n *yaml.Node) (*fable.Tree, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() != "!!str" {
			return nil, d.errorf(n, "expected a story node, got %s", strings.TrimPrefix(n.ShortTag(), "!!"))
		}
		return d.file(n)
	case yaml.MappingNode:
	default:
		return nil, d.errorf(n, "expected a story node")
	}

	shapes := []shape{
		{"title", d.matchTitle},
		{"fade", d.matchFade},
		{"choices", d.matchChoices},
	}
	var matched []shape
	var reasons []error
	for _, s := range shapes {
		if err := s.match(n); err != nil {
			reasons = append(reasons, err)
			continue
		}
		matched = append(matched, s)
	}

	switch len(matched) {
	case 0:
		return nil, d.closest(n, reasons)
	case 1:
	default:
		names := make([]string, len(matched))
		for i, s := range matched {
			names[i] = s.name
		}
		return nil, d.errorf(n, "ambiguous story node: matches %s", strings.Join(names, " and "))
	}

	switch matched[0].name {
	case "title":
		return d.title(n)
	case "fade":
		return d.fade(n)
	default:
		return d.choices(n)
	}
}

// closest picks the most useful reason a mapping matched no shape: the
// fade or title reason when it uses their field names, else the choices one.
func (d *decoder) closest(n *yaml.Node, reasons []error) error {
	keys := keysOf(n)
	switch {
	case slices.Contains(keys, "text") || slices.Contains(keys, "size"):
		return reasons[0]
	case slices.Contains(keys, "milliseconds") || slices.Contains(keys, "node"):
		return reasons[1]
	default:
		return reasons[2]
	}
}

func (d *decoder) matchTitle(n *yaml.Node) error {
	fields, err := d.fields(n, "text", "size")
	if err != nil {
		return err
	}
	text, ok := fields["text"]
	if !ok {
		return d.errorf(n, "title: missing text")
	}
	if !isScalar(text, "!!str") {
		return d.errorf(text, "title: text must be a string")
	}
	size, ok := fields["size"]
	if !ok {
		return d.errorf(n, "title: missing size")
	}
	if !isScalar(size, "!!int", "!!float") {
		return d.errorf(size, "title: size must be a number")
	}
	return nil
}

func (d *decoder) matchFade(n *yaml.Node) error {
	fields, err := d.fields(n, "milliseconds", "node", "then")
	if err != nil {
		return err
	}
	ms, ok := fields["milliseconds"]
	if !ok {
		return d.errorf(n, "fade: missing milliseconds")
	}
	if !isScalar(ms, "!!int") {
		return d.errorf(ms, "fade: milliseconds must be an integer")
	}
	if _, ok := fields["node"]; !ok {
		return d.errorf(n, "fade: missing node")
	}
	return nil
}

func (d *decoder) matchChoices(n *yaml.Node) error {
	n = resolve(n)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], resolve(n.Content[i+1])
		if !isScalar(k, "!!str", "!!int", "!!float", "!!bool") {
			return d.errorf(k, "choices: label must be a scalar")
		}
		if v.Kind != yaml.MappingNode && !isScalar(v, "!!str") {
			return d.errorf(v, "choices: %q must lead to a story node", k.Value)
		}
	}
	return nil
}

func (d *decoder) title(n *yaml.Node) (*fable.Tree, error) {
	fields, _ := d.fields(n, "text", "size")
	var t fable.Title[*fable.Tree]
	if err := fields["text"].Decode(&t.Text); err != nil {
		return nil, d.errorf(fields["text"], "title: %v", err)
	}
	if err := fields["size"].Decode(&t.Size); err != nil {
		return nil, d.errorf(fields["size"], "title: %v", err)
	}
	return fable.NewTree(t), nil
}

func (d *decoder) fade(n *yaml.Node) (*fable.Tree, error) {
	fields, _ := d.fields(n, "milliseconds", "node", "then")
	var f fable.Fade[*fable.Tree]
	if err := fields["milliseconds"].Decode(&f.Milliseconds); err != nil {
		return nil, d.errorf(fields["milliseconds"], "fade: %v", err)
	}
	if f.Milliseconds < 0 {
		return nil, d.errorf(fields["milliseconds"], "fade: milliseconds must not be negative")
	}
	if int64(f.Milliseconds) > fable.MaxFadeMilliseconds {
		return nil, d.errorf(fields["milliseconds"], "fade: milliseconds must not exceed %d", fable.MaxFadeMilliseconds)
	}
	var err error
	if f.Node, err = d.story(fields["node"]); err != nil {
		return nil, err
	}
	if then, ok := fields["then"]; ok {
		if f.Then, err = d.story(then); err != nil {
			return nil, err
		}
	}
	return fable.NewTree(f), nil
}

func (d *decoder) choices(n *yaml.Node) (*fable.Tree, error) {
	n = resolve(n)
	c := fable.Choices[*fable.Tree]{Items: make([]fable.Choice[*fable.Tree], 0, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		target, err := d.story(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		c.Items = append(c.Items, fable.Choice[*fable.Tree]{Label: n.Content[i].Value, Target: target})
	}
	return fable.NewTree(c), nil
}

// file loads the story node held by the file n names, relative to the
// current file.
func (d *decoder) file(n *yaml.Node) (*fable.Tree, error) {
	path := n.Value
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(d.path()), path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, d.errorf(n, "file %q: %v", n.Value, err)
	}
	if slices.Contains(d.stack, abs) {
		return nil, d.errorf(n, "file %q includes itself", n.Value)
	}

	root, err := readNode(abs)
	if err != nil {
		var docErr *fable.DocumentError
		if errors.As(err, &docErr) {
			return nil, err
		}
		return nil, d.errorf(n, "file %q: %v", n.Value, err)
	}

	d.enter(abs)
	defer d.leave()
	return d.story(root)
}

// resolve follows aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isScalar(n *yaml.Node, tags ...string) bool {
	n = resolve(n)
	return n.Kind == yaml.ScalarNode && slices.Contains(tags, n.ShortTag())
}

func keysOf(n *yaml.Node) []string {
	n = resolve(n)
	keys := make([]string, 0, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}
