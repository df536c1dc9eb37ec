package deploy

import (
	"encoding/json"
	"fmt"

	"myself/console/internal/portfolio"
)

// RenderDataFile serializes the document into the TypeScript module the
// static site builds from. Overwriting that file in the site repository is
// what triggers the rebuild.
func RenderDataFile(doc portfolio.Document) (string, error) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	return fmt.Sprintf("\nimport { PortfolioData } from './types';\n\nexport const INITIAL_DATA: PortfolioData = %s;\n", payload), nil
}
