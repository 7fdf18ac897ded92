// Package catalog serves the static exercise reference dataset.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Lookup resolves an exercise name. Unknown names get the default info.
type Lookup interface {
	Lookup(name string) domain.ExerciseInfo
}

// Catalog is an in-memory, read-only exercise table keyed by lower-cased name.
type Catalog struct {
	byName map[string]domain.ExerciseInfo
}

// New builds a catalog from already-parsed rows.
func New(rows []domain.ExerciseInfo) *Catalog {
	c := &Catalog{byName: make(map[string]domain.ExerciseInfo, len(rows))}
	for _, r := range rows {
		c.byName[normalize(r.Name)] = r
	}
	return c
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *Catalog) Lookup(name string) domain.ExerciseInfo {
	if c != nil {
		if info, ok := c.byName[normalize(name)]; ok {
			return info
		}
	}
	return domain.DefaultExerciseInfo(name)
}

// Names lists known exercises in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for _, info := range c.byName {
		names = append(names, info.Name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Len() int {
	return len(c.byName)
}

// Parse reads CSV with the header
// name,category,muscle_groups,calories_per_30_min.
// Rows with an unknown category or a missing, non-numeric or non-positive
// rate are skipped.
func Parse(r io.Reader) ([]domain.ExerciseInfo, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "category", "calories_per_30_min"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog header is missing %q", required)
		}
	}

	var rows []domain.ExerciseInfo
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read catalog line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		info := domain.ExerciseInfo{
			Name:         field("name"),
			Category:     domain.ExerciseCategory(strings.ToLower(field("category"))),
			MuscleGroups: field("muscle_groups"),
		}
		rate, convErr := strconv.Atoi(field("calories_per_30_min"))
		if info.Name == "" || !info.Category.Valid() || convErr != nil || rate <= 0 {
			log.WithField("line", line).Warn("catalog: skipping malformed row")
			continue
		}
		info.CaloriesPer30Minutes = rate
		rows = append(rows, info)
	}
	return rows, nil
}

// LoadFile parses the catalog from a local CSV file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return New(rows), nil
}

// LoadFromStorage parses the catalog from an object in the bucket.
func LoadFromStorage(ctx context.Context, store storage.ObjectStorage, key string) (*Catalog, error) {
	body, err := store.GetObject(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	rows, err := Parse(body)
	if err != nil {
		return nil, err
	}
	return New(rows), nil
}
