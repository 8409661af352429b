package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/skillseek/course-search/internal/config"
	"github.com/skillseek/course-search/internal/core/ports"
	"github.com/skillseek/course-search/internal/core/usecase"
	"github.com/skillseek/course-search/internal/infrastructure/corpus"
	"github.com/skillseek/course-search/internal/infrastructure/corpus/csvfile"
	corpuspg "github.com/skillseek/course-search/internal/infrastructure/corpus/postgres"
	"github.com/skillseek/course-search/internal/infrastructure/corpus/xlsx"
	"github.com/skillseek/course-search/internal/infrastructure/index/flat"
	"github.com/skillseek/course-search/internal/infrastructure/index/snapshot"
	"github.com/skillseek/course-search/internal/infrastructure/language/detect"
	"github.com/skillseek/course-search/internal/infrastructure/language/translate"
	"github.com/skillseek/course-search/internal/infrastructure/llm/ollama"
	"github.com/skillseek/course-search/internal/infrastructure/queue/nats"
	"github.com/skillseek/course-search/internal/infrastructure/resilience"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue    ports.MessageQueue
	Registry *usecase.IndexRegistry

	RetrieveUC *usecase.RetrieveUseCase
	AnswerUC   *usecase.AnswerUseCase
	ReadUC     *usecase.CourseReadUseCase
	BuildUC    *usecase.BuildIndexUseCase

	closeFn func()
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	mapping, err := loadMapping(cfg)
	if err != nil {
		return nil, fmt.Errorf("load corpus mapping: %w", err)
	}

	loader, closeLoader, err := newCorpusLoader(cfg, mapping)
	if err != nil {
		return nil, fmt.Errorf("init corpus loader: %w", err)
	}

	factory, err := newIndexFactory(cfg.IndexType)
	if err != nil {
		if closeLoader != nil {
			closeLoader()
		}
		return nil, err
	}

	store, err := snapshot.NewFileStore(cfg.IndexSnapshotPath)
	if err != nil {
		if closeLoader != nil {
			closeLoader()
		}
		return nil, fmt.Errorf("init snapshot store: %w", err)
	}

	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		if closeLoader != nil {
			closeLoader()
		}
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.EmbedModel, cfg.GenModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)

	translator := translate.New(cfg.TranslateURL, cfg.TranslateRPS, executor)
	detector := detect.New(cfg.MinDetectChars)

	registry := usecase.NewIndexRegistry()
	normalizer := usecase.NewQueryNormalizer(detector, translator, logger)
	retrieveUC := usecase.NewRetrieveUseCase(normalizer, embedder, registry, logger)
	answerUC := usecase.NewAnswerUseCase(retrieveUC, generator, translator, logger)
	readUC := usecase.NewCourseReadUseCase(registry)
	buildUC := usecase.NewBuildIndexUseCase(loader, embedder, store, registry, factory, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:    queue,
		Registry: registry,

		RetrieveUC: retrieveUC,
		AnswerUC:   answerUC,
		ReadUC:     readUC,
		BuildUC:    buildUC,

		closeFn: func() {
			queue.Close()
			if closeLoader != nil {
				closeLoader()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func loadMapping(cfg config.Config) (corpus.Mapping, error) {
	if cfg.MappingPath == "" {
		return corpus.DefaultMapping(), nil
	}
	return corpus.LoadMapping(cfg.MappingPath)
}

func newCorpusLoader(cfg config.Config, mapping corpus.Mapping) (ports.CorpusLoader, func(), error) {
	switch cfg.CorpusFormat {
	case "csv":
		return csvfile.New(cfg.CorpusPath, mapping), nil, nil
	case "xlsx":
		return xlsx.New(cfg.CorpusPath, cfg.CorpusSheet, mapping), nil, nil
	case "postgres":
		db, err := corpuspg.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		loader, err := corpuspg.New(db, cfg.CorpusTable, mapping)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return loader, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown corpus format %q", cfg.CorpusFormat)
	}
}

func newIndexFactory(indexType string) (usecase.IndexFactory, error) {
	switch indexType {
	case "flat":
		return flat.Factory, nil
	default:
		return nil, fmt.Errorf("unknown index type %q", indexType)
	}
}
