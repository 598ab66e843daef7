package wiki

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func TestParseSnapshot(t *testing.T) {
	body := []byte(`{
		"data": {
			"2": {"avgHighPrice": 150, "highPriceVolume": 10, "avgLowPrice": 140, "lowPriceVolume": 20},
			"6": {"avgHighPrice": null, "highPriceVolume": 0, "avgLowPrice": 90, "lowPriceVolume": 5}
		},
		"timestamp": 1700000000
	}`)

	snap, err := ParseSnapshot(body)
	require.NoError(t, err)

	assert.Equal(t, int64(1700000000), snap.Timestamp)
	require.Len(t, snap.Data, 2)

	full := snap.Data[2]
	require.NotNil(t, full.AvgHighPrice)
	assert.Equal(t, 150.0, *full.AvgHighPrice)
	assert.Equal(t, 20.0, *full.LowPriceVolume)

	// null and 0 are different things and must stay different.
	partial := snap.Data[6]
	assert.Nil(t, partial.AvgHighPrice)
	require.NotNil(t, partial.HighPriceVolume)
	assert.Equal(t, 0.0, *partial.HighPriceVolume)
	assert.Equal(t, 90.0, *partial.AvgLowPrice)
}

// -----------------------------------------------------------------------------

func TestParseSnapshotEmptyData(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"data": {}, "timestamp": 1700000300}`))
	require.NoError(t, err)

	assert.Equal(t, int64(1700000300), snap.Timestamp)
	assert.Empty(t, snap.Data)
}

// -----------------------------------------------------------------------------

func TestParseSnapshotSkipsBadItemKeys(t *testing.T) {
	body := []byte(`{
		"data": {
			"2": {"avgLowPrice": 100, "lowPriceVolume": 1},
			"not-an-id": {"avgLowPrice": 50, "lowPriceVolume": 1}
		},
		"timestamp": 1700000000
	}`)

	snap, err := ParseSnapshot(body)
	require.NoError(t, err)
	require.Len(t, snap.Data, 1)
	assert.Contains(t, snap.Data, 2)
}

// -----------------------------------------------------------------------------

func TestParseSnapshotMalformedBody(t *testing.T) {
	_, err := ParseSnapshot([]byte(`{"data": [1,2,3]}`))
	assert.Error(t, err)
}
