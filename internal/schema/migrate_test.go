package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func v100Record() map[string]any {
	return map[string]any{
		"_id":             "draft-1",
		"_version":        V100,
		"_timestamp":      float64(1700000000000),
		"content":         "INT. STUDIO - DAY",
		"backgroundUrl":   "",
		"fontSize":        float64(32),
		"textColor":       "#FFFFFF",
		"backgroundColor": "#000000",
		"scrollSpeed":     float64(5),
		"alignment":       "center",
	}
}

func TestMigrateFullChain(t *testing.T) {
	res, err := Migrate(v100Record())
	require.NoError(t, err)
	require.Equal(t, Migrated, res.Outcome)
	require.Equal(t, V100, res.From)
	require.Equal(t, CurrentVersion, res.Record["_version"])

	// Each step's defaults landed.
	require.Equal(t, "", res.Record["musicUrl"])
	require.Equal(t, 1.0, res.Record["opacity"])
	require.Equal(t, 1.5, res.Record["lineSpacing"])
	require.Equal(t, 10.0, res.Record["sideMargin"])

	// Nothing the record already carried was lost.
	require.Equal(t, "INT. STUDIO - DAY", res.Record["content"])
	require.Equal(t, "#FFFFFF", res.Record["textColor"])
}

func TestMigratePreservesUnknownFields(t *testing.T) {
	record := v100Record()
	record["customField"] = "user data"

	res, err := Migrate(record)
	require.NoError(t, err)
	require.Equal(t, "user data", res.Record["customField"])
}

func TestMigrateDoesNotOverrideExistingValues(t *testing.T) {
	record := v100Record()
	record["_version"] = V110
	record["musicUrl"] = "file:///music.mp3"
	record["opacity"] = 0.5

	res, err := Migrate(record)
	require.NoError(t, err)
	require.Equal(t, "file:///music.mp3", res.Record["musicUrl"])
	require.Equal(t, 0.5, res.Record["opacity"])
}

func TestMigrateIdempotent(t *testing.T) {
	once, err := Migrate(v100Record())
	require.NoError(t, err)

	twice, err := Migrate(once.Record)
	require.NoError(t, err)
	require.Equal(t, Migrated, twice.Outcome)
	require.Equal(t, once.Record, twice.Record, "migrating a current record must be a no-op")
}

func TestMigrateNeverMutatesInput(t *testing.T) {
	record := v100Record()
	_, err := Migrate(record)
	require.NoError(t, err)
	require.Equal(t, v100Record(), record, "input record must be untouched")
}

func TestVersionOfDefaultsToOldest(t *testing.T) {
	require.Equal(t, V100, VersionOf(map[string]any{"content": "x"}))
	require.Equal(t, V110, VersionOf(map[string]any{"_version": V110}))
	require.Equal(t, V100, VersionOf(map[string]any{"_version": ""}))
}

func TestMigrateLegacyUnversionedRecord(t *testing.T) {
	record := v100Record()
	delete(record, "_version")

	res, err := Migrate(record)
	require.NoError(t, err)
	require.Equal(t, Migrated, res.Outcome)
	require.Equal(t, V100, res.From)
	require.Equal(t, CurrentVersion, res.Record["_version"])
}

func TestMigrateUnknownVersionBestEffort(t *testing.T) {
	record := v100Record()
	record["_version"] = "9.9.9"

	res, err := Migrate(record)
	require.NoError(t, err)
	require.Equal(t, BestEffortRecovered, res.Outcome)
	require.Equal(t, CurrentVersion, res.Record["_version"])
	require.Equal(t, "INT. STUDIO - DAY", res.Record["content"], "recovered record keeps its data")
}

func TestMigrateUnknownVersionNoContent(t *testing.T) {
	record := map[string]any{"_version": "9.9.9", "somethingElse": true}

	res, err := Migrate(record)
	require.Error(t, err)
	require.Equal(t, Failed, res.Outcome)

	var migErr *MigrationError
	require.ErrorAs(t, err, &migErr)
	require.Equal(t, "9.9.9", migErr.From)
	require.Equal(t, CurrentVersion, migErr.To)
}

func TestDecodeMigratedRecord(t *testing.T) {
	res, err := Migrate(v100Record())
	require.NoError(t, err)

	d, err := Decode(res.Record)
	require.NoError(t, err)
	require.Equal(t, "draft-1", d.ID)
	require.Equal(t, CurrentVersion, d.Version)
	require.Equal(t, int64(1700000000000), d.Timestamp)
	require.Equal(t, 32, d.FontSize)
	require.Equal(t, 1.5, d.LineSpacing)
}
