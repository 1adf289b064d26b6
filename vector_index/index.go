package vector_index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/codescope/codescope/providers/contracts"
	"github.com/codescope/codescope/retrieval/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/xxh3"
)

// maxEmbedChars caps how much of a file is sent to the embedding provider.
const maxEmbedChars = 8000

// Config holds vector index settings.
type Config struct {
	Path string // Database file path
	Dim  int    // Embedding vector dimension
}

// VectorIndex is a sqlite-vec backed semantic file index. Embeddings are
// produced by an external provider; this index only stores and queries
// them.
type VectorIndex struct {
	conn     *sql.DB
	embedder contracts.IEmbeddingProvider
	dim      int
}

// Open opens or creates the index database. The vec_files virtual table
// uses cosine distance so query scores map cleanly onto similarity.
func Open(cfg Config, embedder contracts.IEmbeddingProvider) (*VectorIndex, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("index path cannot be empty")
	}
	dim := cfg.Dim
	if dim == 0 && embedder != nil {
		dim = embedder.Dimension()
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	sqlite_vec.Auto()

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	index := &VectorIndex{conn: conn, embedder: embedder, dim: dim}
	if err := index.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}

	return index, nil
}

func (index *VectorIndex) initSchema() error {
	if _, err := index.conn.Exec(`
		CREATE TABLE IF NOT EXISTS files (
			file_id      INTEGER PRIMARY KEY AUTOINCREMENT,
			path         TEXT NOT NULL UNIQUE,
			content_hash TEXT NOT NULL,
			indexed_at   TIMESTAMP NOT NULL
		)
	`); err != nil {
		return err
	}

	_, err := index.conn.Exec(fmt.Sprintf(`
		CREATE VIRTUAL TABLE IF NOT EXISTS vec_files USING vec0(
			file_id INTEGER PRIMARY KEY,
			embedding FLOAT[%d] distance_metric=cosine
		)
	`, index.dim))
	return err
}

// IndexFile embeds a file's content and stores it. Unchanged content, as
// identified by its hash, is skipped. Returns true when the file was
// (re-)embedded.
func (index *VectorIndex) IndexFile(ctx context.Context, relativePath string, content []byte) (bool, error) {
	hash := fmt.Sprintf("%016x", xxh3.Hash(content))

	var fileID int64
	var storedHash string
	err := index.conn.QueryRow(
		"SELECT file_id, content_hash FROM files WHERE path = ?", relativePath,
	).Scan(&fileID, &storedHash)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to look up %s: %w", relativePath, err)
	}
	if err == nil && storedHash == hash {
		return false, nil
	}

	text := string(content)
	if len(text) > maxEmbedChars {
		text = text[:maxEmbedChars]
	}
	embedding, embedErr := index.embedder.EmbedText(ctx, text)
	if embedErr != nil {
		return false, fmt.Errorf("failed to embed %s: %w", relativePath, embedErr)
	}
	if len(embedding) != index.dim {
		return false, fmt.Errorf("embedding dimension mismatch for %s: expected %d, got %d", relativePath, index.dim, len(embedding))
	}

	embBytes, serErr := sqlite_vec.SerializeFloat32(embedding)
	if serErr != nil {
		return false, fmt.Errorf("failed to serialize embedding: %w", serErr)
	}

	if err == sql.ErrNoRows {
		result, insErr := index.conn.Exec(
			"INSERT INTO files (path, content_hash, indexed_at) VALUES (?, ?, ?)",
			relativePath, hash, time.Now(),
		)
		if insErr != nil {
			return false, fmt.Errorf("failed to insert file row: %w", insErr)
		}
		fileID, insErr = result.LastInsertId()
		if insErr != nil {
			return false, fmt.Errorf("failed to get file ID: %w", insErr)
		}
	} else {
		if _, updErr := index.conn.Exec(
			"UPDATE files SET content_hash = ?, indexed_at = ? WHERE file_id = ?",
			hash, time.Now(), fileID,
		); updErr != nil {
			return false, fmt.Errorf("failed to update file row: %w", updErr)
		}
		if _, delErr := index.conn.Exec("DELETE FROM vec_files WHERE file_id = ?", fileID); delErr != nil {
			return false, fmt.Errorf("failed to drop stale embedding: %w", delErr)
		}
	}

	if _, err := index.conn.Exec(
		"INSERT INTO vec_files (file_id, embedding) VALUES (?, ?)", fileID, embBytes,
	); err != nil {
		return false, fmt.Errorf("failed to insert embedding: %w", err)
	}

	return true, nil
}

// SearchFiles embeds the query and returns the nearest indexed files.
// Cosine distance in [0, 2] maps to a similarity score in [0, 1].
func (index *VectorIndex) SearchFiles(ctx context.Context, query string, topK int) ([]models.VectorHit, error) {
	embedding, err := index.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	embBytes, err := sqlite_vec.SerializeFloat32(embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize query embedding: %w", err)
	}

	rows, err := index.conn.QueryContext(ctx, `
		SELECT f.path, v.distance
		FROM vec_files v
		JOIN files f ON f.file_id = v.file_id
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance
	`, embBytes, topK)
	if err != nil {
		return nil, fmt.Errorf("vector query failed: %w", err)
	}
	defer rows.Close()

	var hits []models.VectorHit
	for rows.Next() {
		var path string
		var distance float64
		if err := rows.Scan(&path, &distance); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		hits = append(hits, models.VectorHit{
			Path:  path,
			Score: DistanceToScore(distance),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}

	return hits, nil
}

// DistanceToScore converts a cosine distance into a similarity in [0, 1].
func DistanceToScore(distance float64) float64 {
	score := 1 - distance/2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// IndexedCount reports how many files the index currently holds.
func (index *VectorIndex) IndexedCount() (int, error) {
	var count int
	if err := index.conn.QueryRow("SELECT COUNT(*) FROM files").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count indexed files: %w", err)
	}
	return count, nil
}

// Close releases the database connection.
func (index *VectorIndex) Close() error {
	return index.conn.Close()
}
