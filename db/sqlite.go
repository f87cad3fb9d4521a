package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"croprec/ml"
)

type TrainingRun struct {
	RunID        string          `json:"run_id"`
	ModelType    string          `json:"model_type"`
	DatasetPath  string          `json:"dataset_path"`
	DataPoints   int             `json:"data_points"`
	TrainSize    int             `json:"train_size"`
	TestSize     int             `json:"test_size"`
	Accuracy     float64         `json:"accuracy"`
	Precision    float64         `json:"precision"`
	Recall       float64         `json:"recall"`
	F1           float64         `json:"f1"`
	Params       ml.ForestParams `json:"params"`
	ModelPath    string          `json:"model_path"`
	ManifestPath string          `json:"manifest_path"`
	TrainedAt    time.Time       `json:"trained_at"`
}

// Store keeps the history of training runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	database, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}

	query := `
    CREATE TABLE IF NOT EXISTS training_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL UNIQUE,
        model_name VARCHAR(50),
        dataset_path TEXT,
        data_points INTEGER,
        train_size INTEGER,
        test_size INTEGER,
        accuracy REAL,
        precision REAL,
        recall REAL,
        f1 REAL,
        params TEXT,
        model_path TEXT,
        manifest_path TEXT,
        trained_at DATETIME
    );
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, fmt.Errorf("create tables failed: %w", err)
	}
	return &Store{db: database}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveTrainingRun(ctx context.Context, run TrainingRun) error {
	params, err := json.Marshal(run.Params)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO training_log (run_id, model_name, dataset_path, data_points, train_size, test_size,
            accuracy, precision, recall, f1, params, model_path, manifest_path, trained_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.ModelType, run.DatasetPath, run.DataPoints, run.TrainSize, run.TestSize,
		run.Accuracy, run.Precision, run.Recall, run.F1, string(params), run.ModelPath, run.ManifestPath,
		run.TrainedAt.UTC())
	return err
}

// ListTrainingRuns returns up to limit runs, newest first.
func (s *Store) ListTrainingRuns(ctx context.Context, limit int) ([]TrainingRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT run_id, model_name, dataset_path, data_points, train_size, test_size,
            accuracy, precision, recall, f1, params, model_path, manifest_path, trained_at
        FROM training_log
        ORDER BY trained_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []TrainingRun
	for rows.Next() {
		var run TrainingRun
		var params string
		if err := rows.Scan(&run.RunID, &run.ModelType, &run.DatasetPath, &run.DataPoints, &run.TrainSize, &run.TestSize,
			&run.Accuracy, &run.Precision, &run.Recall, &run.F1, &params, &run.ModelPath, &run.ManifestPath,
			&run.TrainedAt); err != nil {
			return nil, err
		}
		if params != "" {
			if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
				return nil, fmt.Errorf("decode params for run %s: %w", run.RunID, err)
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
