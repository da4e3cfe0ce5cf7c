// Package audit writes JSON reports of import runs.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrlokans/journal-importer/internal/entities"
)

// RunReport is the document saved after an import run.
type RunReport struct {
	ExportDir  string               `json:"export_dir"`
	Files      []string             `json:"files"`
	Folder     string               `json:"folder,omitempty"`
	DryRun     bool                 `json:"dry_run"`
	FinishedAt time.Time            `json:"finished_at"`
	Stats      entities.ImportStats `json:"stats"`
}

type Auditor struct {
	AuditDir string
	logger   zerolog.Logger
}

func NewAuditor(auditDir string, logger zerolog.Logger) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
		logger:   logger,
	}
}

// SaveReport writes report as <run id>.json and returns the file path.
func (a *Auditor) SaveReport(report RunReport) (string, error) {
	if report.FinishedAt.IsZero() {
		report.FinishedAt = time.Now()
	}
	if report.Stats.MissingMedia == nil {
		report.Stats.MissingMedia = []entities.MissingMedia{}
	}

	name := report.Stats.RunID
	if name == "" {
		name = uuid.NewString()
	}
	return a.SaveJSON(name, report)
}

// SaveJSON saves data as indented JSON under name; a UUID4 is used when name is empty.
func (a *Auditor) SaveJSON(name string, data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	if name == "" {
		name = uuid.New().String()
	}
	path := filepath.Join(a.AuditDir, name+".json")

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	a.logger.Info().Str("path", path).Msg("saved run report")
	return path, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}
	return nil
}
