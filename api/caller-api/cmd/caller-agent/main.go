// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// caller-agent runs a single price-enquiry call from the terminal: you type
// the shopkeeper's side, the agent answers through the full sanitize →
// model → normalize → speak pipeline. The transcript and its quality
// analysis are written when the call ends.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/rapidaai/api/caller-api/config"
	internal_agent "github.com/rapidaai/api/caller-api/internal/agent"
	internal_llm "github.com/rapidaai/api/caller-api/internal/llm"
	internal_prompt "github.com/rapidaai/api/caller-api/internal/prompt"
	internal_speech "github.com/rapidaai/api/caller-api/internal/speech"
	internal_transcript "github.com/rapidaai/api/caller-api/internal/transcript"
	"github.com/rapidaai/pkg/commons"
	"github.com/rapidaai/pkg/connectors"
)

func main() {
	var (
		storeName = flag.String("store", "Gupta Electronics", "store to call")
		product   = flag.String("product", "AC", "product type")
		category  = flag.String("category", "1.5 ton 5 star split AC", "product category")
		phone     = flag.String("phone", "", "store phone number")
		area      = flag.String("area", "Koramangala", "caller's area")
		withAudio = flag.Bool("audio", false, "synthesize speech via Sarvam")
	)
	flag.Parse()

	v, err := config.InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to read config: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.GetAppConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := commons.NewApplicationLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Infof("shutting down")
		cancel()
	}()

	caller, err := internal_llm.NewOpenAICaller(logger, cfg.LlmApiKey, cfg.LlmBaseUrl, cfg.LlmModel)
	if err != nil {
		logger.Fatalf("unable to create llm caller: %v", err)
	}

	// Postgres is optional for a dev call; transcripts still land on disk.
	var store internal_transcript.Store
	if postgres, err := connectors.NewPostgresConnector(cfg.PostgresConfig, logger); err != nil {
		logger.Warnf("postgres unavailable, skipping call index: %v", err)
	} else {
		store, err = internal_transcript.NewStore(postgres, logger)
		if err != nil {
			logger.Warnf("call index migration failed, skipping: %v", err)
			store = nil
		}
	}

	req := internal_prompt.ProductRequirements{
		ProductType: *product,
		Category:    *category,
	}
	shop := internal_prompt.DiscoveredStore{
		Name:  *storeName,
		Phone: *phone,
		Area:  *area,
	}
	research := internal_prompt.ResearchOutput{
		TopicsToCover: []string{"price", "warranty", "installation", "delivery"},
	}
	greeting := internal_prompt.BuildGreeting(req, shop)

	var synthesizer internal_speech.Synthesizer
	if *withAudio {
		// One-shot REST synthesis of the greeting up front: bad credentials
		// fail here, before the websocket dial and before the model runs.
		rest, err := internal_speech.NewSarvamRestSynthesizer(logger, cfg.SarvamApiKey, nil)
		if err != nil {
			logger.Fatalf("unable to create sarvam client: %v", err)
		}
		audio, err := rest.Synthesize(ctx, greeting)
		if err != nil {
			logger.Fatalf("sarvam rejected greeting synthesis: %v", err)
		}
		logger.Infof("greeting synthesized: %d bytes", len(audio))

		synthesizer, err = internal_speech.NewSarvamSynthesizer(ctx, logger, cfg.SarvamApiKey, nil,
			internal_speech.SynthesizerCallbacks{
				OnSpeech: func(contextId string, audio []byte) {
					logger.Debugf("received %d bytes of audio: contextId=%s", len(audio), contextId)
				},
			})
		if err != nil {
			logger.Fatalf("unable to create synthesizer: %v", err)
		}
		if err := synthesizer.Initialize(); err != nil {
			logger.Fatalf("unable to connect to sarvam: %v", err)
		}
		defer synthesizer.Close(ctx)
	}

	// The whole call runs against a per-call log file so any single call can
	// be replayed end to end.
	contextId := uuid.New().String()
	callLogPath := filepath.Join(cfg.LogDir,
		fmt.Sprintf("call_%s_%s.log", contextId, time.Now().Format("20060102_150405")))
	callLogger, err := commons.NewFileLogger(callLogPath)
	if err != nil {
		logger.Warnf("per-call log unavailable, using application logger: %v", err)
		callLogger = logger
	} else {
		defer callLogger.Sync()
	}
	callLogger.Infof("call started: contextId=%s, store=%s", contextId, *storeName)

	session := internal_agent.NewSession(callLogger, internal_agent.Config{
		ContextId:          contextId,
		StoreName:          *storeName,
		ProductDescription: *category,
		Phone:              *phone,
		SystemPrompt:       internal_prompt.BuildPrompt(req, research, shop),
		Greeting:           greeting,
		TranscriptDir:      cfg.TranscriptDir,
	}, caller, synthesizer, store)

	if err := session.Start(ctx); err != nil {
		logger.Fatalf("unable to start call: %v", err)
	}
	fmt.Printf("agent: %s\n", greeting)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("shopkeeper> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("shopkeeper> ")
			continue
		}
		if line == "/bye" {
			break
		}

		ended, err := session.HandleCallerText(ctx, line)
		if err != nil {
			logger.Errorf("model turn failed: %v", err)
			break
		}
		transcript := session.Transcript()
		if n := len(transcript.Messages); n > 0 {
			last := transcript.Messages[n-1]
			if last.Role == internal_transcript.RoleAgent {
				fmt.Printf("agent: %s\n", last.Text)
			}
		}
		if ended {
			fmt.Println("(agent hung up)")
			break
		}
		fmt.Print("shopkeeper> ")
	}

	transcriptPath, analysisPath, err := session.Finish(ctx)
	if err != nil {
		logger.Errorf("unable to persist call: %v", err)
		os.Exit(1)
	}
	fmt.Printf("transcript: %s\nanalysis:   %s\n", transcriptPath, analysisPath)
}
