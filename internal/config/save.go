package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// durationKeys are rendered as Go duration strings instead of nanoseconds.
var durationKeys = []string{
	"api.timeout",
	"polling.slots_interval",
	"polling.tick_interval",
	"ui.toast_duration",
	"members.cache_ttl",
}

// keyComments are attached above the matching key in the default config.
var keyComments = map[string]string{
	"env":                    "Signup Configuration\n\nSelected API environment (one of the names under environments)",
	"environments":           "API hosts; base_url includes the /jufeng/api base path",
	"api":                    "HTTP client settings",
	"api.forwarded_proto":    "Sent as X-Forwarded-Proto on every request",
	"activity":               "The promotion shown on the activity page",
	"activity.start":         "Registration window, RFC 3339; both bounds are inclusive",
	"activity.capacity":      "Shown as remaining slots until the first successful poll",
	"activity.description":   "Markdown",
	"polling":                "Background refresh cadences",
	"polling.slots_interval": "Remaining-slots poll period",
	"polling.tick_interval":  "Countdown redraw period",
	"ui":                     "UI settings",
	"ui.markdown_style":      "\"dark\" (default) or \"light\"",
	"members":                "Member list settings",
	"members.cache_ttl":      "How long a fetched member list is reused (0 disables caching)",
	"tracing":                "Distributed tracing of API calls",
	"tracing.exporter":       "none, file, stdout or otlp",
	"tracing.file_path":      "Defaults to ~/.config/signup/traces/traces.jsonl",
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() (string, error) {
	var doc yaml.Node
	if err := doc.Encode(Defaults()); err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}

	for _, key := range durationKeys {
		node := lookup(&doc, key)
		if node == nil {
			continue
		}
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			continue
		}
		node.Value = time.Duration(n).String()
		node.Tag = "!!str"
		node.Style = 0
	}

	for key, comment := range keyComments {
		if keyNode := lookupKey(&doc, key); keyNode != nil {
			keyNode.HeadComment = comment
		}
	}

	data, err := encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{&doc}})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveEnv sets the selected environment in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveEnv(configPath, env string) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: env}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{{
				Kind:    yaml.MappingNode,
				Content: []*yaml.Node{{Kind: yaml.ScalarNode, Value: "env"}, value},
			}},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("parsing config: top level is not a mapping")
		}
		if existing := mappingValue(root, "env"); existing != nil {
			existing.Value = env
			existing.Tag = "!!str"
		} else {
			root.Content = append([]*yaml.Node{{Kind: yaml.ScalarNode, Value: "env"}, value}, root.Content...)
		}
	}

	out, err := encode(&doc)
	if err != nil {
		return err
	}
	return writeAtomic(configPath, out)
}

func encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".signup.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// lookup returns the value node at a dotted path in a mapping tree.
func lookup(root *yaml.Node, path string) *yaml.Node {
	node := root
	for _, part := range strings.Split(path, ".") {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		node = mappingValue(node, part)
	}
	return node
}

// lookupKey returns the key node at a dotted path, where comments attach.
func lookupKey(root *yaml.Node, path string) *yaml.Node {
	parent := root
	parts := strings.Split(path, ".")
	if len(parts) > 1 {
		parent = lookup(root, strings.Join(parts[:len(parts)-1], "."))
	}
	if parent == nil || parent.Kind != yaml.MappingNode {
		return nil
	}
	last := parts[len(parts)-1]
	for i := 0; i < len(parent.Content)-1; i += 2 {
		if parent.Content[i].Value == last {
			return parent.Content[i]
		}
	}
	return nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
