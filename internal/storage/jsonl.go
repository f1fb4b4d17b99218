// Package storage handles recipe persistence in SQLite and the JSONL interchange format.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/recipebox/internal/recipe"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all recipes from a JSONL file.
func ReadAll(path string) ([]recipe.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recipes file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads JSONL recipes from r.
func Decode(r io.Reader) ([]recipe.Recipe, error) {
	var recipes []recipe.Recipe
	scanner := bufio.NewScanner(r)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var rec recipe.Recipe
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		recipes = append(recipes, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading recipes: %w", err)
	}

	return recipes, nil
}

// WriteAll writes all recipes to a JSONL file, replacing existing content.
func WriteAll(path string, recipes []recipe.Recipe) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating recipes file: %w", err)
	}

	if err := Encode(f, recipes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes recipes to w, one JSON document per line.
func Encode(w io.Writer, recipes []recipe.Recipe) error {
	for i, rec := range recipes {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding recipe %d: %w", i, err)
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing recipe %d: %w", i, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	return nil
}
