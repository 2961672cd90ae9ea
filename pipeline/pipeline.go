package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"scrappybara.io/depparse/logger"
	"scrappybara.io/depparse/maxent"
	"scrappybara.io/depparse/parser"
	"scrappybara.io/depparse/syntax"
	"scrappybara.io/depparse/types"
	"scrappybara.io/depparse/utils"
)

// Pipeline answers a request with its JSON response on the returned channel.
type Pipeline func(request Request) <-chan string

type ParserParams struct {
	Configuration types.Configuration `json:"configuration"`
	Decoder       parser.Config       `json:"decoder"`
}

func GetParserParams(cfg types.Configuration, decoderFromEnv parser.Config) ParserParams {
	return ParserParams{
		Configuration: cfg,
		Decoder:       cfg.DecoderConfig(decoderFromEnv),
	}
}

// loadTagDictionary reads "word|TAG TAG" lines.
func loadTagDictionary(filePath string) (map[string][]syntax.Tag, error) {
	raw, err := utils.ReadMap(filePath)
	if err != nil {
		return nil, err
	}
	res := make(map[string][]syntax.Tag, len(raw))
	for word, names := range raw {
		for _, name := range strings.Fields(names) {
			tag, err := syntax.ParseTag(name)
			if err != nil {
				return nil, fmt.Errorf("%s: %q: %w", filePath, word, err)
			}
			res[word] = append(res[word], tag)
		}
	}
	return res, nil
}

func NewParserPipeline(params ParserParams) (Pipeline, error) {
	pplnLogger := logger.NewLogger("Parser pipeline")
	errLogger := pplnLogger.With().Caller().Logger()
	pplnLogger.Info().
		Interface("params", params).
		Msg("Starting parser pipeline (see parameters in 'params' field)")
	cfg := params.Configuration

	var knownWords map[string]bool
	if cfg.KnownWords != "" {
		words, err := utils.ReadSet(cfg.KnownWords)
		if err != nil {
			errLogger.Err(err).Str("known_words", cfg.KnownWords).Msg("Failed to load known words")
			return nil, err
		}
		knownWords = words
	}

	var dictionary map[string][]syntax.Tag
	if cfg.TagDictionary != "" {
		dict, err := loadTagDictionary(cfg.TagDictionary)
		if err != nil {
			errLogger.Err(err).Str("tag_dictionary", cfg.TagDictionary).Msg("Failed to load tag dictionary")
			return nil, err
		}
		dictionary = dict
	}

	taggerModel, err := maxent.LoadModelFromFile(cfg.TaggerModel)
	if err != nil {
		errLogger.Err(err).Str("tagger_model", cfg.TaggerModel).Msg("Failed to load tagger model")
		return nil, err
	}
	tagger, err := maxent.NewTagger(taggerModel, cfg.BeamSize, knownWords, dictionary)
	if err != nil {
		errLogger.Err(err).Str("tagger_model", cfg.TaggerModel).Msg("Failed to create tagger")
		return nil, err
	}

	labelerModel, err := maxent.LoadModelFromFile(cfg.LabelerModel)
	if err != nil {
		errLogger.Err(err).Str("labeler_model", cfg.LabelerModel).Msg("Failed to load labeler model")
		return nil, err
	}
	labeler, err := maxent.NewLabeler(labelerModel, cfg.BeamSize)
	if err != nil {
		errLogger.Err(err).Str("labeler_model", cfg.LabelerModel).Msg("Failed to create labeler")
		return nil, err
	}

	transitionModel, err := maxent.LoadModelFromFile(cfg.TransitionModel)
	if err != nil {
		errLogger.Err(err).Str("transition_model", cfg.TransitionModel).Msg("Failed to load transition model")
		return nil, err
	}
	classifier, err := maxent.NewTransitionClassifier(transitionModel)
	if err != nil {
		errLogger.Err(err).Str("transition_model", cfg.TransitionModel).Msg("Failed to create transition classifier")
		return nil, err
	}

	decoder, err := parser.NewDecoder(params.Decoder, classifier)
	if err != nil {
		errLogger.Err(err).Interface("decoder", params.Decoder).Msg("Failed to create decoder")
		return nil, err
	}

	return Compose(tagger, labeler, decoder, cfg.MaxSentenceLength), nil
}

// Compose chains shortening, tagging, labelling and parsing around the given collaborators.
func Compose(tagger TagClassifier, labeler DepClassifier, decoder *parser.Decoder, maxSentenceLength int) Pipeline {
	pplnLogger := logger.NewLogger("Parser pipeline")
	tag := NewTaggerStage(tagger)
	label := NewLabelerStage(labeler)
	build := NewResponseBuilder()

	return func(request Request) <-chan string {
		responseChan := make(chan string, 1)
		pplnLog := logger.ForRequest(pplnLogger, request.Tid)
		errLogger := pplnLog.With().Caller().Logger()
		pplnLog.Info().Int("sentences", len(request.Sentences)).Msg("Started parser pipeline")

		go func() {
			defer close(responseChan)
			in := make(chan *types.Sentence)
			parse := NewParseStage(decoder, pplnLog)
			responses := build(parse(label(tag(in))), request)

			go func() {
				defer close(in)
				for _, sent := range ShortenSentences(request.Sentences, maxSentenceLength) {
					in <- sent
				}
			}()

			response := <-responses
			buf, err := json.Marshal(response)
			if err != nil {
				errLogger.Err(err).Msg("Failed to marshall response")
			}
			pplnLog.Info().Int("parsed", len(response.Sentences)).Msg("Finished parser pipeline")
			responseChan <- string(buf)
		}()

		return responseChan
	}
}
