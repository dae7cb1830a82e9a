package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"

	"nfog/internal/fileutil"
)

// ErrKeyNotFound is returned by Get and Unset for keys absent from the file.
var ErrKeyNotFound = errors.New("config key not set")

const lockTimeout = 5 * time.Second

// Get returns the raw value stored under a dotted key such as
// "catalog.provider". Only keys present in the file are reported.
func Get(path, key string) (any, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	parts, err := splitKey(key)
	if err != nil {
		return nil, err
	}
	var node any = doc
	for _, part := range parts {
		table, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		if node, ok = table[part]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
	}
	return node, nil
}

// Set stores value under a dotted key. The value is read as a TOML literal
// when it parses as one (true, 24, "text") and as a plain string otherwise.
// The edited document must still be a valid configuration.
func Set(path, key, value string) error {
	parts, err := splitKey(key)
	if err != nil {
		return err
	}
	return editDocument(path, func(doc map[string]any) error {
		table := doc
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part].(map[string]any)
			if !ok {
				if _, exists := table[part]; exists {
					return fmt.Errorf("%s is not a table", part)
				}
				next = map[string]any{}
				table[part] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = parseLiteral(value)
		return nil
	})
}

// Unset removes a dotted key. Empty parent tables are removed too.
func Unset(path, key string) error {
	parts, err := splitKey(key)
	if err != nil {
		return err
	}
	return editDocument(path, func(doc map[string]any) error {
		if !deleteKey(doc, parts) {
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return nil
	})
}

// WriteDocument validates data as a configuration and replaces the file at
// path with it under the config lock.
func WriteDocument(path string, data []byte) error {
	if _, err := Parse(bytes.NewReader(data), true); err != nil {
		return err
	}
	unlock, err := lockConfig(path)
	if err != nil {
		return err
	}
	defer unlock()
	return fileutil.WriteFileAtomic(path, data, 0o644, true)
}

func editDocument(path string, edit func(map[string]any) error) error {
	unlock, err := lockConfig(path)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	if err := edit(doc); err != nil {
		return err
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if _, err := Parse(bytes.NewReader(data), true); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644, true)
}

func lockConfig(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	lock := flock.New(path + ".lock")
	deadline := time.Now().Add(lockTimeout)
	for {
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire config lock: %w", err)
		}
		if ok {
			return func() { _ = lock.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("config %s is locked by another nfog process", path)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return doc, nil
}

func splitKey(key string) ([]string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.New("config key must not be empty")
	}
	parts := strings.Split(key, ".")
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("invalid config key %q", key)
		}
	}
	return parts, nil
}

func parseLiteral(value string) any {
	var probe struct {
		V any `toml:"v"`
	}
	if err := toml.Unmarshal([]byte("v = "+value), &probe); err == nil && probe.V != nil {
		return probe.V
	}
	return value
}

func deleteKey(table map[string]any, parts []string) bool {
	head := parts[0]
	if len(parts) == 1 {
		if _, ok := table[head]; !ok {
			return false
		}
		delete(table, head)
		return true
	}
	child, ok := table[head].(map[string]any)
	if !ok || !deleteKey(child, parts[1:]) {
		return false
	}
	if len(child) == 0 {
		delete(table, head)
	}
	return true
}
