package cmd

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureRegistry(t *testing.T) {
	seen := make(map[string]bool)
	for i, f := range features {
		assert.Equal(t, strconv.Itoa(i+1), f.id, "feature ids must be sequential from 1")
		assert.False(t, seen[f.id], "feature id %s registered twice", f.id)
		seen[f.id] = true
		assert.NotEmpty(t, f.description)
		assert.NotNil(t, f.run)
	}
	assert.Equal(t, strconv.Itoa(len(features)+1), exitID)
}

func TestPrompt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Trims whitespace", input: "  PROJ  \n", expected: "PROJ"},
		{name: "Empty line", input: "\n", expected: ""},
		{name: "Last line without newline", input: "PMT", expected: "PMT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			in := bufio.NewReader(strings.NewReader(tt.input))

			got, err := prompt(in, &out, "Project: ")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, "Project: ", out.String())
		})
	}
}

func TestPromptEOF(t *testing.T) {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(""))

	_, err := prompt(in, &out, "Project: ")
	require.Error(t, err)
}

func TestPrintMenuListsAllFeatures(t *testing.T) {
	var out bytes.Buffer
	printMenu(&out)

	menu := out.String()
	for _, f := range features {
		assert.Contains(t, menu, f.id+". "+f.description)
	}
	assert.Contains(t, menu, exitID+". Exit")
}
