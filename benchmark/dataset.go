/*
Package benchmark times decision tree and random forest training under the
different parallelism strategies and reports how they compare.
*/
package benchmark

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/dineshmanideep/Parallel-random-forest/table"
	"github.com/dineshmanideep/Parallel-random-forest/table/csv"
	yaml "gopkg.in/yaml.v2"
)

/*
Dataset describes a CSV file to benchmark on: the column to predict, the
columns to use as features and the ratio of its rows to keep when loaded.
A zero SubsampleRatio keeps every row.
*/
type Dataset struct {
	Name           string   `yaml:"name"`
	Path           string   `yaml:"path"`
	Target         string   `yaml:"target"`
	Features       []string `yaml:"features"`
	SubsampleRatio float64  `yaml:"subsample,omitempty"`
}

type datasetsFile struct {
	Datasets []Dataset `yaml:"datasets"`
}

var presets = []Dataset{
	{
		Name:   "diabetes",
		Path:   "diabetes.csv",
		Target: "Outcome",
		Features: []string{
			"Pregnancies", "Glucose", "BloodPressure", "SkinThickness",
			"Insulin", "BMI", "DiabetesPedigreeFunction", "Age",
		},
	},
	{
		Name:   "palmer_penguins",
		Path:   "palmer_penguins.csv",
		Target: "species",
		Features: []string{
			"island", "bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g",
		},
	},
	{
		Name:   "dry_bean",
		Path:   "Dry_Bean_Dataset.csv",
		Target: "Class",
		Features: []string{
			"Area", "Perimeter", "MajorAxisLength", "MinorAxisLength",
			"AspectRation", "Eccentricity", "ConvexArea", "EquivDiameter",
			"Extent", "Solidity", "roundness", "Compactness",
			"ShapeFactor1", "ShapeFactor2", "ShapeFactor3", "ShapeFactor4",
		},
		SubsampleRatio: 0.25,
	},
}

/*
Presets returns the built-in datasets with their paths relative to the given
directory.
*/
func Presets(dir string) []Dataset {
	ds := make([]Dataset, len(presets))
	for i, d := range presets {
		d.Features = append([]string(nil), d.Features...)
		d.Path = filepath.Join(dir, d.Path)
		ds[i] = d
	}
	return ds
}

// Preset returns the built-in dataset with the given name under dir.
func Preset(dir, name string) (Dataset, bool) {
	for _, d := range Presets(dir) {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

/*
LoadDatasets takes YAML content with a datasets list and returns the datasets
it describes. Every dataset needs a name, a path, a target and at least one
feature, and the subsample ratio must be in [0, 1].
*/
func LoadDatasets(content []byte) ([]Dataset, error) {
	df := &datasetsFile{}
	err := yaml.Unmarshal(content, df)
	if err != nil {
		return nil, fmt.Errorf("parsing datasets: %v", err)
	}
	if len(df.Datasets) == 0 {
		return nil, fmt.Errorf("no datasets defined")
	}
	for i, d := range df.Datasets {
		if err := d.validate(); err != nil {
			return nil, fmt.Errorf("dataset %d: %v", i, err)
		}
	}
	return df.Datasets, nil
}

// LoadDatasetsFromFile is LoadDatasets over the content of the file at path.
func LoadDatasetsFromFile(path string) ([]Dataset, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadDatasets(content)
}

func (d Dataset) validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("missing name")
	case d.Path == "":
		return fmt.Errorf("%s: missing path", d.Name)
	case d.Target == "":
		return fmt.Errorf("%s: missing target", d.Name)
	case len(d.Features) == 0:
		return fmt.Errorf("%s: no features", d.Name)
	case d.SubsampleRatio < 0 || d.SubsampleRatio > 1:
		return fmt.Errorf("%s: subsample ratio must be in [0, 1], got %v", d.Name, d.SubsampleRatio)
	}
	return nil
}

/*
Load reads the CSV file of the dataset and returns a table with its feature
and target columns, subsampled with the given seed if the dataset says so.
*/
func (d Dataset) Load(seed uint64) (*table.Table, error) {
	t, err := csv.ReadTableFromFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %v", d.Name, err)
	}
	t, err = t.Select(append(append([]string(nil), d.Features...), d.Target)...)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %v", d.Name, err)
	}
	if d.SubsampleRatio > 0 {
		t, err = table.Subsample(t, d.SubsampleRatio, seed)
		if err != nil {
			return nil, fmt.Errorf("subsampling dataset %s: %v", d.Name, err)
		}
	}
	return t, nil
}
