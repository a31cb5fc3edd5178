package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ExtractEmailsFromCSV reads an uploaded contact CSV and returns the
// normalized, deduplicated addresses it contains. The email column is found
// by header name; headerless single-column files are accepted as plain
// address lists.
func ExtractEmailsFromCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	emailCol := findEmailColumn(rows[0])
	start := 1
	if emailCol == -1 {
		// No recognizable header; treat every first column value as an address.
		emailCol = 0
		start = 0
	}

	seen := make(map[string]struct{})
	var emails []string
	for _, row := range rows[start:] {
		if emailCol >= len(row) {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(row[emailCol]))
		if email == "" || !strings.Contains(email, "@") {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}

	if len(emails) == 0 {
		return nil, fmt.Errorf("no email addresses found in CSV")
	}
	return emails, nil
}

func findEmailColumn(header []string) int {
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if name == "email" || name == "email_address" || name == "e-mail" ||
			strings.Contains(name, "email") {
			return i
		}
	}
	return -1
}
