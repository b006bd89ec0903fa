// Package container holds all application dependencies and manages their
// lifecycle.
package container

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"sizhen/adapters/excel"
	"sizhen/adapters/memory"
	"sizhen/adapters/modality"
	"sizhen/adapters/postgres"
	"sizhen/adapters/suggestion"
	"sizhen/app"
	"sizhen/domain/diagnosis"
	"sizhen/domain/tables"
	"sizhen/internal/config"
	"sizhen/internal/fusion"
	"sizhen/ports"
)

// Container wires the fusion engine, repositories, modality clients and
// exporters together.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB *sqlx.DB

	Rules             *tables.RuleSet
	Engine            *fusion.Engine
	AssessmentRepo    ports.AssessmentRepository
	ModalityServices  []ports.ModalityService
	Suggestions       ports.SuggestionProvider
	Exporter          *excel.Exporter
	AssessmentService *app.AssessmentService
}

// New creates the dependency container.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{Config: cfg, Logger: logger}

	rules, err := loadRules(cfg.Analysis.RuleTablePath)
	if err != nil {
		return nil, fmt.Errorf("loading rule tables: %w", err)
	}
	c.Rules = rules
	c.Engine = fusion.NewEngine(rules, fusion.WithLogger(logger))

	c.Suggestions, err = suggestion.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("loading suggestion templates: %w", err)
	}

	c.ModalityServices = modality.ClientsFromURLs(map[diagnosis.Modality]string{
		diagnosis.ModalityLooking: cfg.Modality.LookingURL,
		diagnosis.ModalitySmell:   cfg.Modality.SmellURL,
		diagnosis.ModalityInquiry: cfg.Modality.InquiryURL,
		diagnosis.ModalityTouch:   cfg.Modality.TouchURL,
	}, cfg.Modality.FetchTimeout)

	c.Exporter = excel.NewExporter()
	return c, nil
}

// InitStorage selects the repository backend: PostgreSQL when a database URL
// is configured, in-memory otherwise.
func (c *Container) InitStorage(ctx context.Context) error {
	if c.Config.Database.URL == "" {
		c.Logger.Info("no database configured, using in-memory assessment store")
		c.AssessmentRepo = memory.NewAssessmentRepository()
		c.buildService()
		return nil
	}

	db, err := postgres.Connect(ctx, c.Config.Database)
	if err != nil {
		return err
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return err
	}
	c.DB = db
	c.AssessmentRepo = postgres.NewAssessmentRepository(db)
	c.Logger.Info("connected to postgres assessment store")
	c.buildService()
	return nil
}

func (c *Container) buildService() {
	c.AssessmentService = app.NewAssessmentService(
		c.Engine, c.AssessmentRepo, c.ModalityServices, c.Suggestions, c.Logger)
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

func loadRules(path string) (*tables.RuleSet, error) {
	if path == "" {
		return tables.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return tables.Load(data)
}
