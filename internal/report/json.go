package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// WriteJSON writes the analysis as pretty-printed JSON.
func WriteJSON(w io.Writer, analysis domain.Analysis) error {
	jsonData, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis to JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')
	_, err = w.Write(jsonData)
	return err
}
