package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleCompanies(t *testing.T) {
	companies := SampleCompanies()
	require.NotEmpty(t, companies)

	seen := map[string]bool{}
	for _, c := range companies {
		assert.NotEmpty(t, c.CompanyName)
		assert.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "duplicate id for %s", c.CompanyName)
		seen[c.ID] = true
	}

	tf := companies[0]
	assert.Equal(t, "TechFlow Solutions", tf.CompanyName)
	assert.Equal(t, 58, tf.OwnerAge)
	assert.Equal(t, 2_125_000.0, tf.EBITDA)
}

func TestSampleLoaderReturnsCopies(t *testing.T) {
	loader := NewSampleLoader()
	first, err := loader.Load(context.Background())
	require.NoError(t, err)
	first[0].CompanyName = "changed"

	second, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "TechFlow Solutions", second[0].CompanyName)
	assert.Equal(t, SampleCompanies(), second)
}
