package avalform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
}

func TestNew_MissingDataFileFailsBeforeLaunch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nobody.json")

	c, err := New(Config{URL: "https://forms.test/view.php?id=1", DataFile: path})

	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "nobody.json", "error names the missing file")
	assert.Contains(t, err.Error(), "not found")
}

func TestNew_LoadsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persons.json")
	data := `[{"element_2":"Ali","element_3":"Rezaei"},{"element_2":"Sara"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := New(Config{URL: "https://forms.test/view.php?id=1", DataFile: path})

	require.NoError(t, err)
	require.Len(t, c.People(), 2)
	assert.Equal(t, "Ali", c.People()[0].Value("element_2"))
}

func TestNew_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persons.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	c, err := New(Config{URL: "https://forms.test/view.php?id=1", DataFile: path})

	require.NoError(t, err)
	assert.Equal(t, settlePause, c.config.SettlePause)
	assert.NotEmpty(t, c.runID)
	assert.NotNil(t, c.rng)
}

func TestNew_FixedSeedProducesEqualChoices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persons.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	cfg := Config{URL: "https://forms.test/view.php?id=1", DataFile: path, Seed: 99}

	a, err := New(cfg)
	require.NoError(t, err)
	b, err := New(cfg)
	require.NoError(t, err)

	for i := 0; i < 32; i++ {
		assert.Equal(t, a.rng.Intn(1000), b.rng.Intn(1000))
	}
}
