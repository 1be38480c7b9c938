package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"communityconnect.org/internal/export"
)

const seedFile = "../../data/seeds/businesses.json"

// runDirtool executes dirtool with args and returns what it printed.
func runDirtool(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func seededDatabase(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "directory.db")
	out, err := runDirtool(t, "seed", "--db-dsn", dsn, "--file", seedFile)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 6 businesses")
	return dsn
}

func TestMigrateCmd(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "directory.db")

	out, err := runDirtool(t, "migrate", "--db-dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "schema ready (sqlite)")

	_, err = runDirtool(t, "migrate", "--db-dsn", dsn)
	assert.NoError(t, err, "migrating twice is safe")
}

func TestSeedCmdIsRepeatable(t *testing.T) {
	dsn := seededDatabase(t)

	out, err := runDirtool(t, "seed", "--db-dsn", dsn, "-f", seedFile)
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 6 businesses")

	out, err = runDirtool(t, "rank", "--db-dsn", dsn)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 6)
}

func TestSeedCmdMissingFile(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "directory.db")
	_, err := runDirtool(t, "seed", "--db-dsn", dsn, "--file", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRankCmd(t *testing.T) {
	dsn := seededDatabase(t)

	out, err := runDirtool(t, "rank", "--db-dsn", dsn)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "Glamour Hair Studio")
	assert.Contains(t, lines[1], "Mama's Kitchen")
	assert.Contains(t, lines[4], "Groot Marico Braai Spot")
	assert.Contains(t, lines[4], "km E")
	assert.Contains(t, lines[5], "Ikageng Fresh Produce")
	assert.Contains(t, lines[5], "location unknown")
}

func TestRankCmdFilters(t *testing.T) {
	dsn := seededDatabase(t)

	out, err := runDirtool(t, "rank", "--db-dsn", dsn, "--category", "Restaurant")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Mama's Kitchen")
	assert.Contains(t, lines[1], "Groot Marico Braai Spot")

	out, err = runDirtool(t, "rank", "--db-dsn", dsn, "-s", "dentist")
	require.NoError(t, err)
	assert.Contains(t, out, "No businesses found.")
}

func TestRankCmdReferencePoint(t *testing.T) {
	dsn := seededDatabase(t)

	out, err := runDirtool(t, "rank", "--db-dsn", dsn, "--lat", "-25.6", "--lon", "26.4167")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "Groot Marico Braai Spot")
	assert.Contains(t, lines[0], "0.00 km")
}

func TestRankCmdJSON(t *testing.T) {
	dsn := seededDatabase(t)

	out, err := runDirtool(t, "rank", "--db-dsn", dsn, "--json", "--category", "Salon")
	require.NoError(t, err)
	assert.Contains(t, out, `"Name": "Glamour Hair Studio"`)
	assert.Contains(t, out, `"DistanceKm"`)
}

func TestRankCmdRejectsInvalidReference(t *testing.T) {
	dsn := seededDatabase(t)
	_, err := runDirtool(t, "rank", "--db-dsn", dsn, "--lat", "95")
	assert.Error(t, err)
}

func TestExportCmd(t *testing.T) {
	dsn := seededDatabase(t)
	out := filepath.Join(t.TempDir(), "businesses.xlsx")

	printed, err := runDirtool(t, "export", "--db-dsn", dsn, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, printed, "exported 6 businesses")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "Glamour Hair Studio", rows[1][1])
	assert.Equal(t, "Ikageng Fresh Produce", rows[6][1])
}

func TestUnknownDriver(t *testing.T) {
	_, err := runDirtool(t, "migrate", "--db-driver", "mysql")
	assert.ErrorContains(t, err, "unsupported database driver")
}
