// Command standards-seed writes one example standards record so the
// archive layout can be inspected without network access or an API key.
// Real data comes from 'standardspull sync'.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"standardspull/pkg/pathindex"
	"standardspull/pkg/pathsafe"
)

type seedStandard struct {
	Code      string   `json:"code"`
	Statement string   `json:"statement"`
	Notes     string   `json:"notes"`
	Tags      []string `json:"tags"`
}

type seedRecord struct {
	Framework string         `json:"framework"`
	Subject   string         `json:"subject"`
	Grade     string         `json:"grade"`
	Version   string         `json:"version"`
	Source    string         `json:"source"`
	Standards []seedStandard `json:"standards"`
}

var dir = flag.String("dir", "standards", "Root directory for the example record")

func main() {
	flag.Parse()

	record := seedRecord{
		Framework: "Common Core",
		Subject:   "math",
		Grade:     "grade-8",
		Version:   time.Now().Format("2006-01-02"),
		Source:    "https://www.corestandards.org/Math/Content/",
		Standards: []seedStandard{
			{
				Code:      "8.EE.A.1",
				Statement: "[PLACEHOLDER] Know and apply properties of integer exponents to generate equivalent numerical expressions.",
				Notes:     "Expressions & Equations",
				Tags:      []string{"exponents", "EE"},
			},
		},
	}

	path := filepath.Join(
		*dir,
		pathsafe.Slug(record.Framework),
		pathsafe.Slug(record.Subject),
		pathsafe.Slug(record.Grade)+".json",
	)

	if err := pathindex.WriteJSON(path, record); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("Wrote:", path)
}
