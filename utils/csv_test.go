package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmailsFromCSVWithHeader(t *testing.T) {
	input := "name,Email,company\n" +
		"Alice,ALICE@Example.com,Initech\n" +
		"Bob,bob@example.com,Initech\n" +
		"Dup,alice@example.com,Initech\n" +
		"Blank,,Initech\n"

	emails, err := ExtractEmailsFromCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, emails)
}

func TestExtractEmailsFromCSVHeaderless(t *testing.T) {
	input := "alice@example.com\nbob@example.com\n"

	emails, err := ExtractEmailsFromCSV(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, emails)
}

func TestExtractEmailsFromCSVEmpty(t *testing.T) {
	_, err := ExtractEmailsFromCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ExtractEmailsFromCSV(strings.NewReader("name,company\nAlice,Initech\n"))
	assert.Error(t, err)
}
