package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeInfo creates dir/abandon.info with content and returns its path
func writeInfo(t *testing.T, dir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("rom"), 0644))
}

func TestParse_Category(t *testing.T) {
	dir := t.TempDir()
	path := writeInfo(t, dir, "cat: Arcade\n")

	d, err := Parse(path)
	require.NoError(t, err)

	assert.True(t, d.IsCategory)
	assert.Equal(t, "Arcade", d.Name)
	assert.Equal(t, "arcade", d.SortKey)
	assert.Equal(t, dir, d.BaseDir)
	assert.Empty(t, d.Type)
}

func TestParse_Leaf(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "smb.nes"))
	path := writeInfo(t, dir, "name: Super Mario Bros.\ntype: nes\nrom: smb.nes\n")

	d, err := Parse(path)
	require.NoError(t, err)

	assert.False(t, d.IsCategory)
	assert.Equal(t, "Super Mario Bros.", d.Name)
	assert.Equal(t, "nes", d.Type)
	assert.Equal(t, "smb.nes", d.Resource)
	assert.Equal(t, filepath.Join(dir, "smb.nes"), d.ResourcePath)
	assert.Equal(t, "super mario bros.", d.SortKey)
	assert.True(t, d.HasResource())
}

func TestParse_SortKey(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"explicit sort is lowercased", "name: The Oregon Trail\ntype: dos\nsort: Oregon Trail", "oregon trail"},
		{"derived from name", "name: Zork I\ntype: dos", "zork i"},
		{"sort before name", "sort: AAA\ncat: Last", "aaa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(writeInfo(t, t.TempDir(), tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.SortKey)
		})
	}
}

func TestParse_WhitespaceAndKeyCase(t *testing.T) {
	content := "\n   NAME: Keen  \n\n\tType: dos\n   \n"
	d, err := Parse(writeInfo(t, t.TempDir(), content))
	require.NoError(t, err)
	assert.Equal(t, "Keen", d.Name)
	assert.Equal(t, "dos", d.Type)
}

func TestParse_ValueMayContainSeparator(t *testing.T) {
	d, err := Parse(writeInfo(t, t.TempDir(), "name: Indiana Jones: Fate of Atlantis\ntype: dos"))
	require.NoError(t, err)
	assert.Equal(t, "Indiana Jones: Fate of Atlantis", d.Name)
}

func TestParse_LaterOfCatAndNameWins(t *testing.T) {
	d, err := Parse(writeInfo(t, t.TempDir(), "name: Game\ntype: dos\ncat: Folder"))
	require.NoError(t, err)
	assert.True(t, d.IsCategory)
	assert.Equal(t, "Folder", d.Name)
	assert.Empty(t, d.Type, "categories never carry a type")

	d, err = Parse(writeInfo(t, t.TempDir(), "cat: Folder\nname: Game\ntype: dos"))
	require.NoError(t, err)
	assert.False(t, d.IsCategory)
	assert.Equal(t, "Game", d.Name)
	assert.Equal(t, "dos", d.Type)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    Kind
		detail  string
	}{
		{"malformed line", "name: Keen\njust some text", KindMalformedLine, "Unknown line: just some text"},
		{"empty value", "name: Keen\ntype:", KindMalformedLine, "Unknown line: type:"},
		{"unknown key", "foo: bar", KindUnknownKey, "Unknown info file key: foo"},
		{"unknown key lowercased", "Emulator: mame", KindUnknownKey, "Unknown info file key: emulator"},
		{"missing type", "name: Keen", KindMissingType, "type was not specified"},
		{"invalid type", "name: Keen\ntype: amiga", KindInvalidType, ""},
		{"missing resource", "name: Zelda\ntype: nes", KindMissingResource, "does not specify a ROM file"},
		{"resource not found", "name: Zelda\ntype: nes\nrom: zelda.nes", KindResourceNotFound, "zelda.nes does not exist"},
		{"optional resource still checked", "name: Keen\ntype: dos\nrom: KEEN.EXE", KindResourceNotFound, "KEEN.EXE does not exist"},
		{"no name", "type: dos", KindMissingName, ""},
		{"empty file", "", KindMissingName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(writeInfo(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.Nil(t, d)
			assert.True(t, IsKind(err, tt.kind), "expected %v, got %v", tt.kind, err)
			if tt.detail != "" {
				assert.Equal(t, tt.detail, err.Error())
			}
		})
	}
}

func TestParse_InvalidTypeListsValidTypes(t *testing.T) {
	_, err := Parse(writeInfo(t, t.TempDir(), "name: Keen\ntype: amiga"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type must be one of: dos, dosbox, fceux")
}

func TestParse_CategoryResourceChecked(t *testing.T) {
	_, err := Parse(writeInfo(t, t.TempDir(), "cat: Stuff\nrom: missing.bin"))
	assert.True(t, IsKind(err, KindResourceNotFound))
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), FileName))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindRead))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unknown key", KindUnknownKey.String())
	assert.Equal(t, "resource not found", KindResourceNotFound.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
