package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Errors returned by configuration loading.
var (
	ErrInvalidConfig = errors.New("invalid configuration file")
)

// LoadFile reads a JSON configuration file and merges it over the
// defaults. A missing file is not an error; the defaults are returned.
func LoadFile(path string) (IndentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultIndent(), nil
		}
		return IndentConfig{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(string(data))
}

// Parse merges a JSON document over the default configuration.
//
// Recognized keys:
//
//	indentStep          int
//	literateMode        "none" | "bird" | "latex"
//	birdDefaultOffset   int
//	lookPastEmptyLines  bool
//	thenElseOffset      int
//	rhsAlignColumn      int
//	afterKeywordOffsets { "kw": {"offset": n, "hangingOffset": n}, ... }
func Parse(doc string) (IndentConfig, error) {
	if !gjson.Valid(doc) {
		return IndentConfig{}, ErrInvalidConfig
	}

	c := DefaultIndent()

	if v := gjson.Get(doc, "indentStep"); v.Exists() {
		c.IndentStep = int(v.Int())
	}
	if v := gjson.Get(doc, "literateMode"); v.Exists() {
		switch v.String() {
		case "none":
			c.LiterateMode = LiterateNone
		case "bird":
			c.LiterateMode = LiterateBird
		case "latex":
			c.LiterateMode = LiterateLatex
		default:
			return IndentConfig{}, fmt.Errorf("%w: unknown literateMode %q", ErrInvalidConfig, v.String())
		}
	}
	if v := gjson.Get(doc, "birdDefaultOffset"); v.Exists() {
		c.BirdDefaultOffset = int(v.Int())
	}
	if v := gjson.Get(doc, "lookPastEmptyLines"); v.Exists() {
		c.LookPastEmptyLines = v.Bool()
	}
	if v := gjson.Get(doc, "thenElseOffset"); v.Exists() {
		c.ThenElseOffset = int(v.Int())
	}
	if v := gjson.Get(doc, "rhsAlignColumn"); v.Exists() {
		c.RHSAlignColumn = int(v.Int())
	}
	if v := gjson.Get(doc, "afterKeywordOffsets"); v.Exists() {
		if !v.IsObject() {
			return IndentConfig{}, fmt.Errorf("%w: afterKeywordOffsets must be an object", ErrInvalidConfig)
		}
		v.ForEach(func(key, val gjson.Result) bool {
			ko := c.KeywordOffsetFor(key.String())
			if o := val.Get("offset"); o.Exists() {
				ko.Offset = int(o.Int())
			}
			if h := val.Get("hangingOffset"); h.Exists() {
				ko.HangingOffset = int(h.Int())
			}
			c.AfterKeywordOffsets[key.String()] = ko
			return true
		})
	}

	if c.IndentStep < 1 {
		return IndentConfig{}, fmt.Errorf("%w: indentStep must be positive", ErrInvalidConfig)
	}
	if c.BirdDefaultOffset < 0 {
		return IndentConfig{}, fmt.Errorf("%w: birdDefaultOffset must be non-negative", ErrInvalidConfig)
	}

	return c, nil
}

// Marshal renders the configuration as a JSON document.
func Marshal(c IndentConfig) (string, error) {
	doc := "{}"
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}

	set("indentStep", c.IndentStep)
	set("literateMode", c.LiterateMode.String())
	set("birdDefaultOffset", c.BirdDefaultOffset)
	set("lookPastEmptyLines", c.LookPastEmptyLines)
	set("thenElseOffset", c.ThenElseOffset)
	set("rhsAlignColumn", c.RHSAlignColumn)
	for kw, ko := range c.AfterKeywordOffsets {
		set("afterKeywordOffsets."+kw+".offset", ko.Offset)
		set("afterKeywordOffsets."+kw+".hangingOffset", ko.HangingOffset)
	}

	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return doc, nil
}

// SaveFile writes the configuration to a JSON file.
func SaveFile(path string, c IndentConfig) error {
	doc, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
