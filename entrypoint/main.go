package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"scrappybara.io/depparse/api"
	"scrappybara.io/depparse/logger"
	"scrappybara.io/depparse/parser"
	"scrappybara.io/depparse/pipeline"
	"scrappybara.io/depparse/types"
	"scrappybara.io/depparse/worker"
)

type Config struct {
	ConfigPath    string `envconfig:"PARSER_CONFIG_PATH" required:"true"`
	RestAPIActive bool   `envconfig:"PARSER_REST_API_ACTIVE" default:"false"`
	RestAPIPort   string `envconfig:"PARSER_REST_API_PORT" default:"10000"`
	WorkerActive  bool   `envconfig:"PARSER_WORKER_ACTIVE" default:"true"`
}

const (
	pipelineStartMaxRetries = 5
	retryDelay              = 5 * time.Second
)

func main() {
	logger.SetupLogging()
	mainLogger := logger.NewLogger("Main")
	fatalErrLogger := mainLogger.Fatal().Caller()
	oraclePath := flag.String("oracle", "", "labelled data file (JSON or YAML) to extract oracle transitions from")
	samplesPath := flag.String("samples", "", "with -oracle, also write training samples to this file")
	seed := flag.Int64("seed", 1, "shuffle seed for -samples")
	flag.Parse()

	if *oraclePath != "" {
		sents, err := extractOracle(*oraclePath, os.Stdout, mainLogger)
		if err != nil {
			fatalErrLogger.Err(err).Str("path", *oraclePath).Msg("Failed to extract oracle transitions")
			os.Exit(1)
		}
		if *samplesPath == "" {
			return
		}
		f, err := os.Create(*samplesPath)
		if err != nil {
			fatalErrLogger.Err(err).Str("path", *samplesPath).Msg("Failed to create samples file")
			os.Exit(1)
		}
		defer f.Close()
		if err := writeSamples(sents, *seed, f); err != nil {
			fatalErrLogger.Err(err).Str("path", *samplesPath).Msg("Failed to write samples")
			os.Exit(1)
		}
		return
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}
	decoderConfig, err := parser.LoadConfigFromEnv()
	if err != nil {
		fatalErrLogger.Err(err).Msg("Failed to read decoder environment")
		os.Exit(1)
	}

	pipelineChannel := make(chan pipeline.Pipeline)
	go func() {
		for retry := 0; retry < pipelineStartMaxRetries; retry++ {
			cfg, err := types.LoadConfiguration(config.ConfigPath)
			if err != nil {
				mainLogger.Err(err).Msg("Failed to load configuration. Retrying in 5 sec")
				time.Sleep(retryDelay)
				continue
			}
			mainLogger.Info().Str("configuration", cfg.Name).Msg("Starting pipeline loading")

			ppln, err := pipeline.NewParserPipeline(pipeline.GetParserParams(cfg, decoderConfig))
			if err != nil {
				mainLogger.Err(err).Msg("Failed to start parser pipeline. Retrying in 5 sec")
				time.Sleep(retryDelay)
				continue
			}
			mainLogger.Info().Msg("Pipeline loaded")
			pipelineChannel <- ppln
			return
		}
		fatalErrLogger.Msgf("Could not start pipeline after %d retries, exiting", pipelineStartMaxRetries)
		os.Exit(1)
	}()

	// block until pipeline loads
	ppln := <-pipelineChannel

	if config.RestAPIActive {
		serve := func() {
			mainLogger.Info().Msg("Starting API service")
			apiRequest := &api.Request{Pipeline: ppln}
			http.HandleFunc("/", apiRequest.ProcessData)
			host := fmt.Sprintf(":%s", config.RestAPIPort)
			mainLogger.Info().Msgf("REST API on %s", host)
			err := http.ListenAndServe(host, nil)
			mainLogger.Fatal().Caller().Err(err).Msg("REST API stopped with error")
		}
		if !config.WorkerActive {
			serve()
			return
		}
		go serve()
	}
	if !config.WorkerActive {
		mainLogger.Warn().Msg("Neither the REST API nor the worker is active. Exit...")
		return
	}

	mainLogger.Info().Msg("Start parser worker")
	for {
		rmqWorker, err := worker.New(ppln)
		if err != nil {
			fatalErrLogger.Err(err).Msg("Could not initialize RMQ worker")
			os.Exit(1)
		}
		if err = rmqWorker.StartWorker(); err != nil {
			mainLogger.Err(err).Msg("Worker returned with error. Launching new in 5 seconds")
			time.Sleep(retryDelay)
		}
	}
}
