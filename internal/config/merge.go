package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyData     = "data"
	keyDefaults = "defaults"
	keyOutput   = "output"
	keyLogging  = "logging"
)

// ShallowMergeYAML loads a YAML file and merges its top-level sections onto
// target. Keys set inside a section override the matching fields; fields
// the file leaves out keep their current values. Absent sections and
// unknown keys leave target unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = decodeSection(target, key, &node); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}
	return nil
}

// decodeSection decodes node over a copy of the current section, so a
// decode error leaves target untouched.
func decodeSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyData:
		v := target.Data
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Data = v
	case keyDefaults:
		v := target.Defaults
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Defaults = v
	case keyOutput:
		v := target.Output
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Output = v
	case keyLogging:
		v := target.Logging
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	}
	return nil
}
