package types

import (
	"errors"
	"fmt"
	"io/ioutil"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"scrappybara.io/depparse/parser"
	"scrappybara.io/depparse/syntax"
)

const (
	defaultBeamSize = 3
)

var ErrBadConfiguration = errors.New("bad configuration")

// Configuration names the models of a parsing pipeline. Relative paths are resolved against the
// directory of the configuration file.
type Configuration struct {
	Name              string        `yaml:"-" json:"name"`
	FilePath          string        `yaml:"-" json:"file_path"`
	TaggerModel       string        `yaml:"tagger_model" json:"tagger_model"`
	LabelerModel      string        `yaml:"labeler_model" json:"labeler_model"`
	TransitionModel   string        `yaml:"transition_model" json:"transition_model"`
	KnownWords        string        `yaml:"known_words" json:"known_words"`
	TagDictionary     string        `yaml:"tag_dictionary" json:"tag_dictionary"`
	BeamSize          int           `yaml:"beam_size" json:"beam_size"`
	MaxSentenceLength int           `yaml:"max_sentence_length" json:"max_sentence_length"`
	Decoder           parser.Config `yaml:"decoder" json:"decoder"`
}

func (cfg *Configuration) resolve(p string) string {
	if p == "" || path.IsAbs(p) {
		return p
	}
	return path.Join(path.Dir(cfg.FilePath), p)
}

func LoadConfiguration(filePath string) (Configuration, error) {
	cfg := Configuration{
		Name:     strings.TrimSuffix(path.Base(filePath), path.Ext(filePath)),
		FilePath: filePath,
	}
	buf, err := ioutil.ReadFile(filePath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrBadConfiguration, filePath, err)
	}

	if cfg.TaggerModel == "" || cfg.LabelerModel == "" || cfg.TransitionModel == "" {
		return cfg, fmt.Errorf("%w: %s: tagger, labeler and transition models are required", ErrBadConfiguration, filePath)
	}
	cfg.TaggerModel = cfg.resolve(cfg.TaggerModel)
	cfg.LabelerModel = cfg.resolve(cfg.LabelerModel)
	cfg.TransitionModel = cfg.resolve(cfg.TransitionModel)
	cfg.KnownWords = cfg.resolve(cfg.KnownWords)
	cfg.TagDictionary = cfg.resolve(cfg.TagDictionary)

	if cfg.BeamSize <= 0 {
		cfg.BeamSize = defaultBeamSize
	}
	if cfg.MaxSentenceLength <= 0 || cfg.MaxSentenceLength > syntax.MaxSentLength {
		cfg.MaxSentenceLength = syntax.MaxSentLength
	}
	return cfg, nil
}

// DecoderConfig lets the file override the decoder settings read from the environment, field by field.
func (cfg Configuration) DecoderConfig(fromEnv parser.Config) parser.Config {
	res := fromEnv
	if cfg.Decoder.BatchSize > 0 {
		res.BatchSize = cfg.Decoder.BatchSize
	}
	if cfg.Decoder.Workers > 0 {
		res.Workers = cfg.Decoder.Workers
	}
	return res
}
