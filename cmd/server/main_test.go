package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicecatalog/internal/catalog/schema"
)

const (
	seedFile      = "../../seed/catalog.yaml"
	libraryRoot   = "0b6e3c1a-5d2f-4c1e-8a6b-000000000101"
	withdrawnRoot = "0b6e3c1a-5d2f-4c1e-8a6b-000000000103"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--seed", seedFile, "--log-level", "error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGetPrintsPublishedServiceFromSeed(t *testing.T) {
	out, err := runCLI(t, "get", libraryRoot)
	require.NoError(t, err)

	var svc schema.Service
	require.NoError(t, json.Unmarshal([]byte(out), &svc))
	assert.Equal(t, libraryRoot, svc.ID)
	assert.Equal(t, "Published", svc.Status)

	langs := make([]string, 0, len(svc.Names))
	for _, n := range svc.Names {
		langs = append(langs, n.Language)
	}
	assert.ElementsMatch(t, []string{"fi", "sv"}, langs)
}

func TestGetLatestReturnsTheModifiedVersion(t *testing.T) {
	out, err := runCLI(t, "get", libraryRoot, "--mode", "Latest", "--schema", "v9")
	require.NoError(t, err)

	var svc schema.Service
	require.NoError(t, json.Unmarshal([]byte(out), &svc))
	assert.Equal(t, "Modified", svc.Status)
}

func TestGetFailures(t *testing.T) {
	_, err := runCLI(t, "get", withdrawnRoot)
	assert.ErrorContains(t, err, "not found")

	_, err = runCLI(t, "get", "not-a-uuid")
	assert.Error(t, err)

	_, err = runCLI(t, "get", libraryRoot, "--schema", "v6")
	assert.Error(t, err)
}

func TestSeedRequiresDatabase(t *testing.T) {
	_, err := runCLI(t, "seed")
	assert.ErrorContains(t, err, "database.url")
}
