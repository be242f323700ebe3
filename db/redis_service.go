package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gradebook-server-go/config"
	"gradebook-server-go/models"
	"gradebook-server-go/roster"
	"gradebook-server-go/tabular"
)

const (
	gradebooksKey       = "gradebooks" // Set: Stores all gradebook IDs
	gradebookInfoPrefix = "gradebook:" // Hash prefix: gradebook:{id} -> details and header
	gradebookRowsPrefix = "gradebook:" // List prefix: gradebook:{id}:rows -> one JSON array per row
	columnsField        = "columns"    // Hash field holding the JSON encoded header
	maxTxRetries        = 5
)

var (
	ErrGradebookNotFound = errors.New("gradebook not found")
	ErrNameRequired      = errors.New("gradebook name cannot be empty")
	ErrConflict          = errors.New("gradebook was modified concurrently, retry the request")
)

// RedisService handles operations with the Redis database
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context // Base context
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client) *RedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

func getGradebookInfoKey(id string) string {
	return gradebookInfoPrefix + id
}

func getGradebookRowsKey(id string) string {
	return gradebookRowsPrefix + id + ":rows"
}

// --- Gradebook Operations ---

// CreateGradebook stores a new, empty gradebook
func (s *RedisService) CreateGradebook(name string) (*models.Gradebook, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	gb := models.Gradebook{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	pipe := s.Client.TxPipeline()
	pipe.SAdd(s.Ctx, gradebooksKey, gb.ID)
	pipe.HSet(s.Ctx, getGradebookInfoKey(gb.ID), map[string]interface{}{
		"id":         gb.ID,
		"name":       gb.Name,
		"createdAt":  gb.CreatedAt,
		columnsField: "[]",
	})
	if _, err := pipe.Exec(s.Ctx); err != nil {
		log.Printf("Error creating gradebook %s: %v", gb.Name, err)
		return nil, fmt.Errorf("failed to add gradebook to Redis: %w", err)
	}
	log.Printf("Created gradebook: %s (%s)", gb.Name, gb.ID)
	return &gb, nil
}

// GetGradebookByID retrieves gradebook details, or nil when it does not exist
func (s *RedisService) GetGradebookByID(id string) (*models.Gradebook, error) {
	data, err := s.Client.HGetAll(s.Ctx, getGradebookInfoKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Printf("Error getting gradebook %s: %v", id, err)
		return nil, fmt.Errorf("failed to get gradebook from Redis: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &models.Gradebook{
		ID:        data["id"],
		Name:      data["name"],
		CreatedAt: data["createdAt"],
	}, nil
}

// GetAllGradebooks retrieves all gradebooks ordered by name
func (s *RedisService) GetAllGradebooks() ([]models.Gradebook, error) {
	ids, err := s.Client.SMembers(s.Ctx, gradebooksKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Gradebook{}, nil
		}
		log.Printf("Error getting all gradebook IDs: %v", err)
		return nil, fmt.Errorf("failed to get gradebook IDs from Redis: %w", err)
	}

	gradebooks := make([]models.Gradebook, 0, len(ids))
	for _, id := range ids {
		gb, err := s.GetGradebookByID(id)
		if err != nil {
			log.Printf("Error fetching details for gradebook %s: %v", id, err)
			continue
		}
		if gb != nil {
			gradebooks = append(gradebooks, *gb)
		}
	}
	sort.Slice(gradebooks, func(i, j int) bool {
		if gradebooks[i].Name != gradebooks[j].Name {
			return gradebooks[i].Name < gradebooks[j].Name
		}
		return gradebooks[i].ID < gradebooks[j].ID
	})
	return gradebooks, nil
}

// GradebookExists checks if an ID is in the gradebooks set
func (s *RedisService) GradebookExists(id string) (bool, error) {
	exists, err := s.Client.SIsMember(s.Ctx, gradebooksKey, id).Result()
	if err != nil {
		log.Printf("Error checking existence for gradebook %s: %v", id, err)
		return false, fmt.Errorf("failed to check gradebook existence: %w", err)
	}
	return exists, nil
}

// DeleteGradebook removes a gradebook and its rows
func (s *RedisService) DeleteGradebook(id string) error {
	exists, err := s.GradebookExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrGradebookNotFound
	}

	pipe := s.Client.TxPipeline()
	pipe.SRem(s.Ctx, gradebooksKey, id)
	pipe.Del(s.Ctx, getGradebookInfoKey(id), getGradebookRowsKey(id))
	if _, err := pipe.Exec(s.Ctx); err != nil {
		log.Printf("Error deleting gradebook %s: %v", id, err)
		return fmt.Errorf("failed to delete gradebook from Redis: %w", err)
	}
	log.Printf("Deleted gradebook %s", id)
	return nil
}

// --- Table Operations ---

// LoadTable reads the roster table of a gradebook
func (s *RedisService) LoadTable(id string) (*roster.Table, error) {
	return readTable(s.Ctx, s.Client, id)
}

// UpdateTable loads the table, applies fn and stores the result in one
// optimistic transaction. When fn fails nothing is written and its error is
// returned unchanged.
func (s *RedisService) UpdateTable(id string, fn func(t *roster.Table) error) (*roster.Table, error) {
	infoKey, rowsKey := getGradebookInfoKey(id), getGradebookRowsKey(id)

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		var updated *roster.Table
		err := s.Client.Watch(s.Ctx, func(tx *redis.Tx) error {
			t, err := readTable(s.Ctx, tx, id)
			if err != nil {
				return err
			}
			if err := fn(t); err != nil {
				return err
			}
			_, err = tx.TxPipelined(s.Ctx, func(pipe redis.Pipeliner) error {
				return writeTable(s.Ctx, pipe, id, t)
			})
			if err != nil {
				return err
			}
			updated = t
			return nil
		}, infoKey, rowsKey)

		if errors.Is(err, redis.TxFailedErr) {
			log.Printf("Gradebook %s changed during update, retrying (%d/%d)", id, attempt+1, maxTxRetries)
			continue
		}
		return updated, err
	}
	return nil, ErrConflict
}

func readTable(ctx context.Context, c redis.Cmdable, id string) (*roster.Table, error) {
	raw, err := c.HGet(ctx, getGradebookInfoKey(id), columnsField).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGradebookNotFound
		}
		return nil, fmt.Errorf("failed to get columns of gradebook %s: %w", id, err)
	}
	var columns []string
	if err := json.Unmarshal([]byte(raw), &columns); err != nil {
		return nil, fmt.Errorf("corrupt columns for gradebook %s: %w", id, err)
	}

	encoded, err := c.LRange(ctx, getGradebookRowsKey(id), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get rows of gradebook %s: %w", id, err)
	}
	rows := make([][]roster.Cell, 0, len(encoded))
	for i, e := range encoded {
		var row []roster.Cell
		if err := json.Unmarshal([]byte(e), &row); err != nil {
			return nil, fmt.Errorf("corrupt row %d for gradebook %s: %w", i, id, err)
		}
		rows = append(rows, row)
	}
	return roster.FromRows(columns, rows)
}

func writeTable(ctx context.Context, pipe redis.Pipeliner, id string, t *roster.Table) error {
	columns, err := json.Marshal(t.Columns())
	if err != nil {
		return err
	}
	rows := t.Rows()
	values := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			return err
		}
		values = append(values, string(b))
	}

	rowsKey := getGradebookRowsKey(id)
	pipe.HSet(ctx, getGradebookInfoKey(id), columnsField, string(columns))
	pipe.Del(ctx, rowsKey)
	if len(values) > 0 {
		pipe.RPush(ctx, rowsKey, values...)
	}
	return nil
}

// --- Import / Export ---

// ImportRoster reads a CSV or Excel stream and replaces the gradebook's table
// with it. It returns the number of student rows loaded.
func (s *RedisService) ImportRoster(id string, file io.Reader, format tabular.Format) (int, error) {
	records, err := tabular.Read(file, format)
	if err != nil {
		log.Printf("Error reading %s upload for gradebook %s: %v", format, id, err)
		return 0, err
	}

	t, err := s.UpdateTable(id, func(t *roster.Table) error {
		return t.Load(records)
	})
	if err != nil {
		return 0, err
	}
	log.Printf("Imported %d students into gradebook %s", t.RowCount(), id)
	return t.RowCount(), nil
}

// ExportRoster writes the gradebook's table to w
func (s *RedisService) ExportRoster(id string, w io.Writer, format tabular.Format) error {
	t, err := s.LoadTable(id)
	if err != nil {
		return err
	}
	return tabular.Write(w, format, t.Export())
}

// --- Seed Data ---

// SampleRecords is the roster used to seed an empty database
var SampleRecords = [][]string{
	{"SID", "FirstName", "LastName", "Email", "HW1", "HW2", "HW3", "Quiz1", "Quiz2", "Quiz3", "Quiz4", "Midterm", "Final"},
	{"S1001", "Ada", "Lovelace", "ada@example.edu", "90", "90", "90", "80", "80", "80", "80", "85", "90"},
	{"S1002", "Alan", "Turing", "alan@example.edu", "100", "100", "100", "100", "100", "100", "100", "90", "95"},
	{"S1023", "Grace", "Hopper", "grace@example.edu", "75", "82", "68", "70", "88", "91", "64", "72", "79"},
}

// SeedData creates a sample gradebook
func (s *RedisService) SeedData() (*models.Gradebook, error) {
	log.Println("Seeding initial data...")
	gb, err := s.CreateGradebook("Sample Course")
	if err != nil {
		return nil, err
	}
	if _, err := s.UpdateTable(gb.ID, func(t *roster.Table) error {
		return t.Load(SampleRecords)
	}); err != nil {
		return nil, fmt.Errorf("failed to seed gradebook %s: %w", gb.ID, err)
	}
	log.Println("Seeding complete.")
	return gb, nil
}

// --- Utility ---

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("Successfully connected to Redis DB %d", cfg.RedisDB)
	return rdb, nil
}
