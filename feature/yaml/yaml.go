/*
Package yaml provides methods to parse model metadata, the target column and
the ordered list of feature columns to train on, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Metadata names the column to predict and the columns to predict it from.
type Metadata struct {
	Target   string   `yaml:"target"`
	Features []string `yaml:"features"`
}

/*
ReadMetadata takes a slice of bytes with a metadata specification in YAML
and returns the Metadata parsed from it or an error. The YAML is expected to
be an object with a target property holding the name of the column to
predict and a features property holding a list of column names. The target
cannot be among the features.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := &Metadata{}
	err := yaml.Unmarshal(md, metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if metadata.Target == "" {
		return nil, fmt.Errorf("metadata has no target")
	}
	if len(metadata.Features) == 0 {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	seen := make(map[string]bool)
	for _, f := range metadata.Features {
		if f == metadata.Target {
			return nil, fmt.Errorf("target %q cannot be used as a feature", f)
		}
		if seen[f] {
			return nil, fmt.Errorf("feature %q declared twice", f)
		}
		seen[f] = true
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return metadata, err
}
